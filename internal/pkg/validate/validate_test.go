package validate

import (
	"errors"
	"testing"

	"backoffice/internal/model/system"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Code string `json:"code" binding:"required,max=5"`
}

type row struct {
	inner
	Email string `json:"email" binding:"omitempty,email"`
	Kind  string `json:"kind" binding:"omitempty,oneof=a b"`
	Count int    `json:"count" binding:"gte=0"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(&row{inner: inner{Code: "ok"}}))

	err := Struct(&row{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, system.ErrValidation))
	var ve *system.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "code", ve.Field)
	assert.Equal(t, "不能为空", ve.Message)
}

func TestTranslate(t *testing.T) {
	err := Validator().Struct(&row{inner: inner{Code: "toolong"}, Email: "x", Kind: "c", Count: -1})
	list := Translate(err)
	require.Len(t, list, 4)

	got := map[string]string{}
	for _, v := range list {
		got[v.Field] = v.Message
	}
	assert.Equal(t, "长度不能超过5", got["code"])
	assert.Equal(t, "邮箱格式不正确", got["email"])
	assert.Equal(t, "必须是[a b]之一", got["kind"])
	assert.Equal(t, "不能小于0", got["count"])

	assert.Nil(t, Translate(errors.New("plain")))
}
