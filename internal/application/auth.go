package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/homecove/homecove/internal/domain/entity"
	"github.com/homecove/homecove/pkg/apperr"
	"github.com/homecove/homecove/pkg/helpers"
)

const sessionTTL = 24 * time.Hour

// TokenPair is the short-lived and long-lived identity assertion pair.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(accountID string) string {
	return "account:session:" + accountID
}

// Authenticate verifies email + credential and returns the account.
// Lookup failure and hash mismatch are indistinguishable to the caller.
func (f *Facade) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	account, err := f.AccountByEmail(ctx, email)
	if err != nil || account == nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !helpers.CheckPassword(account.PasswordHash, password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return account, nil
}

// IssueTokens generates the token pair and records a session in redis
// when configured.
func (f *Facade) IssueTokens(ctx context.Context, account *entity.Account) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := f.JWT.GenerateAccessToken(account.ID, account.IsAdmin, sid)
	if err != nil {
		f.logError(err, "generate access token", logrus.Fields{"account_id": account.ID})
		return TokenPair{}, apperr.Unexpected(err)
	}
	refresh, rexp, err := f.JWT.GenerateRefreshToken(account.ID, account.IsAdmin, sid)
	if err != nil {
		f.logError(err, "generate refresh token", logrus.Fields{"account_id": account.ID})
		return TokenPair{}, apperr.Unexpected(err)
	}

	if f.Redis != nil {
		key := sessionKey(account.ID)
		pipe := f.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"account_id": account.ID,
			"email":      account.Email,
			"is_admin":   account.IsAdmin,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			f.logError(rErr, "record session", logrus.Fields{"key": key})
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Login authenticates and issues the token pair.
func (f *Facade) Login(ctx context.Context, email, password string) (*entity.Account, TokenPair, error) {
	account, err := f.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := f.IssueTokens(ctx, account)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return account, pair, nil
}

// Refresh exchanges a valid long-lived assertion for a fresh
// short-lived one. The session id is preserved so the refresh token
// stays usable until it expires or the account logs out.
func (f *Facade) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := f.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", time.Time{}, apperr.Unauthorized("invalid refresh token")
	}
	account, err := f.Stores.Accounts.Get(ctx, claims.AccountID)
	if err != nil {
		return "", time.Time{}, apperr.Unauthorized("invalid refresh token")
	}
	if f.Redis != nil {
		data, rErr := f.Redis.HGetAll(ctx, sessionKey(account.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return "", time.Time{}, apperr.Unauthorized("session expired")
		}
	}
	access, aexp, err := f.JWT.GenerateAccessToken(account.ID, account.IsAdmin, claims.SessionID)
	if err != nil {
		return "", time.Time{}, apperr.Unexpected(err)
	}
	return access, aexp, nil
}

// Logout drops the redis session, invalidating outstanding refresh
// tokens bound to it.
func (f *Facade) Logout(ctx context.Context, accountID string) {
	if f.Redis == nil || accountID == "" {
		return
	}
	if err := f.Redis.Del(ctx, sessionKey(accountID)).Err(); err != nil {
		f.logError(err, "drop session", logrus.Fields{"account_id": accountID})
	}
}
