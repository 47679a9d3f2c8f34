package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and verifies the signed identity assertions: a
// short-lived access token and a long-lived refresh token. Claims
// carry the account id and admin flag only, never the credential.
type JWTManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewJWTManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

type Claims struct {
	AccountID string `json:"uid"`
	Admin     bool   `json:"adm"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

func (m *JWTManager) newClaims(accountID string, admin bool, sessionID string, ttl time.Duration) (*Claims, time.Time) {
	exp := time.Now().Add(ttl)
	return &Claims{
		AccountID: accountID,
		Admin:     admin,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}, exp
}

func (m *JWTManager) GenerateAccessToken(accountID string, admin bool, sessionID string) (string, time.Time, error) {
	claims, exp := m.newClaims(accountID, admin, sessionID, m.AccessTTL)
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.AccessSecret)
	return s, exp, err
}

func (m *JWTManager) GenerateRefreshToken(accountID string, admin bool, sessionID string) (string, time.Time, error) {
	claims, exp := m.newClaims(accountID, admin, sessionID, m.RefreshTTL)
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.RefreshSecret)
	return s, exp, err
}

func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, m.AccessSecret)
}

func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, m.RefreshSecret)
}

func parseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
