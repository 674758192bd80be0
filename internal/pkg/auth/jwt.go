/**
 * 工具类:JWT工具
 * @date: 2026.03.08
 * @description: 后台用户访问令牌的签发与校验
 * @func:
 * 	1.签发访问令牌(携带用户、租户、角色与令牌ID)
 * 	2.校验访问令牌
 * 	3.从 Authorization 头提取令牌
 */

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultIssuer   = "backoffice"
	defaultAudience = "backoffice-web"
	bearerPrefix    = "Bearer "
)

// JWTClaims JWT声明结构
type JWTClaims struct {
	UserID   uint64   `json:"user_id"`
	Username string   `json:"username"`
	TenantID uint64   `json:"tenant_id"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTManager JWT管理器
type JWTManager struct {
	secretKey      []byte
	issuer         string
	accessTokenTTL time.Duration
}

// NewJWTManager 创建JWT管理器，issuer 为空时使用默认值
func NewJWTManager(secretKey, issuer string, accessTokenTTL time.Duration) *JWTManager {
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &JWTManager{
		secretKey:      []byte(secretKey),
		issuer:         issuer,
		accessTokenTTL: accessTokenTTL,
	}
}

// AccessTokenTTL 访问令牌有效期
func (j *JWTManager) AccessTokenTTL() time.Duration {
	return j.accessTokenTTL
}

// GenerateAccessToken 生成访问令牌，返回令牌与令牌ID(jti)，jti 用于会话注销
func (j *JWTManager) GenerateAccessToken(userID uint64, username string, tenantID uint64, roles []string) (string, string, error) {
	jti, err := uuid.NewRandom()
	if err != nil {
		return "", "", fmt.Errorf("generate jti: %w", err)
	}
	now := time.Now()
	claims := &JWTClaims{
		UserID:   userID,
		Username: username,
		TenantID: tenantID,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   username,
			Audience:  []string{defaultAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", "", err
	}
	return signed, claims.ID, nil
}

// ValidateAccessToken 验证访问令牌(签名算法、签发者、过期时间)
func (j *JWTManager) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secretKey, nil
	}, jwt.WithIssuer(j.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractTokenFromHeader 从Authorization头中提取令牌
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > len(bearerPrefix) && authHeader[:len(bearerPrefix)] == bearerPrefix {
		return authHeader[len(bearerPrefix):]
	}
	return ""
}
