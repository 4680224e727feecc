package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/folio/internal/db"
	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 12 * time.Hour

// tokenIssuer 签发与校验后台 API 使用的 HS256 access token。
type tokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type adminClaims struct {
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

func newTokenIssuer(secret, issuer string, ttl time.Duration) tokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	if issuer == "" {
		issuer = "folio"
	}
	return tokenIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (t tokenIssuer) enabled() bool {
	return len(t.secret) > 0
}

func (t tokenIssuer) issue(admin *db.Admin) (string, time.Time, error) {
	if !t.enabled() {
		return "", time.Time{}, errors.New("token signing disabled")
	}
	now := t.now().UTC()
	exp := now.Add(t.ttl)
	claims := adminClaims{
		Username:    admin.Username,
		Permissions: []string(admin.Permissions),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatUint(uint64(admin.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	return signed, exp, err
}

// parse 返回 token 中的管理员 ID，权限以数据库为准，不信任 claims。
func (t tokenIssuer) parse(raw string) (uint, error) {
	if !t.enabled() {
		return 0, errors.New("token signing disabled")
	}
	claims := &adminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid token subject")
	}
	return uint(id), nil
}
