/**
 * 认证:用户密码
 * @date: 2026.03.08
 * @description: 登录密码以 Argon2id 存储，编码串自带参数，调整 security.password 后旧密码仍可校验
 * @func:
 * 	1.HashPassword 新密码编码
 * 	2.VerifyPassword 按编码串内的参数重算并比较
 * 	3.ValidateStrength 新建/重置密码时的强度规则
 */
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"backoffice/internal/config"

	"golang.org/x/crypto/argon2"
)

const (
	saltBytes         = 16
	keyBytes          = 32
	maxPasswordLength = 128
	defaultMinLength  = 6
	hashScheme        = "argon2id"
)

var (
	errEmptyPassword = errors.New("password is empty")
	errMalformedHash = errors.New("malformed password hash")
)

// argonParams 一次哈希使用的参数，与编码串中的 m/t/p 段一一对应
type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

var defaultArgonParams = argonParams{memory: 64 * 1024, time: 3, threads: 2}

// PasswordManager 用户密码的编码与校验
type PasswordManager struct {
	params    argonParams
	minLength int
}

// NewPasswordManager cfg 为空或字段为零时取默认参数
func NewPasswordManager(cfg *config.PasswordConfig) *PasswordManager {
	pm := &PasswordManager{params: defaultArgonParams, minLength: defaultMinLength}
	if cfg == nil {
		return pm
	}
	if cfg.Memory > 0 {
		pm.params.memory = cfg.Memory
	}
	if cfg.Iterations > 0 {
		pm.params.time = cfg.Iterations
	}
	if cfg.Parallelism > 0 {
		pm.params.threads = cfg.Parallelism
	}
	if cfg.MinLength > 0 {
		pm.minLength = cfg.MinLength
	}
	return pm
}

// ValidateStrength 长度在 [minLength, 128] 内，且同时包含字母和数字
func (pm *PasswordManager) ValidateStrength(password string) error {
	n := len([]rune(password))
	if n < pm.minLength {
		return fmt.Errorf("密码长度不能少于%d位", pm.minLength)
	}
	if n > maxPasswordLength {
		return fmt.Errorf("密码长度不能超过%d位", maxPasswordLength)
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case r <= unicode.MaxASCII && unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return errors.New("密码必须同时包含字母和数字")
	}
	return nil
}

// HashPassword 返回 $argon2id$v=19$m=..,t=..,p=..$salt$key
func (pm *PasswordManager) HashPassword(password string) (string, error) {
	if password == "" {
		return "", errEmptyPassword
	}
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	p := pm.params
	key := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, keyBytes)
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		hashScheme, argon2.Version, p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword 编码串无法解析时返回错误，密码不匹配返回 (false, nil)
func (pm *PasswordManager) VerifyPassword(password, encoded string) (bool, error) {
	if password == "" {
		return false, errEmptyPassword
	}
	p, salt, key, err := parseHash(encoded)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, got) == 1, nil
}

func parseHash(encoded string) (argonParams, []byte, []byte, error) {
	var p argonParams
	// 首段为空串："" / argon2id / v=19 / m=,t=,p= / salt / key
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != hashScheme {
		return p, nil, nil, errMalformedHash
	}
	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: version %q", errMalformedHash, fields[2])
	}
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, nil, nil, fmt.Errorf("%w: params %q", errMalformedHash, fields[3])
	}
	salt, err := base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt", errMalformedHash)
	}
	key, err := base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: key", errMalformedHash)
	}
	return p, salt, key, nil
}
