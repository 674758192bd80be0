package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "ipv4", input: "10.0.0.1", want: "10.0.0.1"},
		{name: "ipv4_with_port", input: "10.0.0.1:8080", want: "10.0.0.1"},
		{name: "forwarded_list", input: "192.168.1.9, 10.0.0.1", want: "192.168.1.9"},
		{name: "ipv4_mapped", input: "::ffff:192.0.2.1", want: "192.0.2.1"},
		{name: "ipv6_with_port", input: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "not_an_ip", input: "localhost", want: "localhost"},
		{name: "blank_first_hop", input: " , 10.0.0.1", want: ""},
		{name: "mapped_with_port", input: "[::ffff:10.1.2.3]:9000", want: "10.1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIP(tt.input))
		})
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), 7, "alice", 3)
	assert.Equal(t, uint64(7), GetUserIDFromContext(ctx))
	assert.Equal(t, "alice", GetUsernameFromContext(ctx))
	assert.Equal(t, uint64(3), GetTenantIDFromContext(ctx))

	empty := context.Background()
	assert.Zero(t, GetUserIDFromContext(empty))
	assert.Empty(t, GetClientIPFromContext(empty))
	assert.Empty(t, GetRequestIDFromContext(empty))
}

func TestGenerateUUID(t *testing.T) {
	a, err := GenerateUUID()
	assert.NoError(t, err)
	b := MustUUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
