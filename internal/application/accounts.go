package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/homecove/homecove/internal/domain/entity"
	"github.com/homecove/homecove/internal/domain/repository"
	"github.com/homecove/homecove/pkg/apperr"
	"github.com/homecove/homecove/pkg/helpers"
	"github.com/homecove/homecove/pkg/mailer"
)

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// accountUpdatable is the allow-list for account updates. is_admin is
// additionally gated on the caller's admin claim.
var accountUpdatable = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"password":   true,
	"is_admin":   true,
}

// RegisterAccount creates an account. The admin flag is honored only
// when the caller's own assertion carries the admin claim; otherwise it
// is forced false. Registration itself needs no assertion.
func (f *Facade) RegisterAccount(ctx context.Context, in RegisterInput, actor *helpers.Claims) (*entity.Account, error) {
	isAdmin := in.IsAdmin && actor != nil && actor.Admin

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	account, err := entity.NewAccount(in.FirstName, in.LastName, in.Email, hash, isAdmin)
	if err != nil {
		return nil, err
	}
	if err := f.emailTaken(ctx, account.Email, ""); err != nil {
		return nil, err
	}
	if err := f.Stores.Accounts.Add(ctx, account); err != nil {
		f.logError(err, "register account", logrus.Fields{"email": account.Email})
		return nil, apperr.Unexpected(err)
	}
	f.sendWelcome(ctx, account)
	return account, nil
}

// emailTaken checks system-wide email uniqueness against the active
// backend, excluding excludeID so an account can keep its own address
// on update. Identity is compared by id, not object identity.
func (f *Facade) emailTaken(ctx context.Context, email, excludeID string) error {
	existing, err := f.Stores.Accounts.FindByField(ctx, "email", email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return apperr.Unexpected(err)
	}
	if existing.ID != excludeID {
		return apperr.Conflict("email %q is already registered", email)
	}
	return nil
}

func (f *Facade) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	a, err := f.Stores.Accounts.Get(ctx, id)
	return a, translate(err, "account", id)
}

func (f *Facade) GetAllAccounts(ctx context.Context) ([]*entity.Account, error) {
	out, err := f.Stores.Accounts.GetAll(ctx)
	return out, translate(err, "account", "")
}

func (f *Facade) AccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	a, err := f.Stores.Accounts.FindByField(ctx, "email", email)
	return a, translate(err, "account", email)
}

// UpdateAccount applies allow-listed fields to an account. Sequence:
// resolve → authorize (self or admin) → allow-list → email uniqueness
// excluding self → hash any new credential → entity setters → persist.
func (f *Facade) UpdateAccount(ctx context.Context, id string, fields map[string]any, actor *helpers.Claims) (*entity.Account, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	account, err := f.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, account.ID) {
		return nil, apperr.Forbidden("you can only modify your own account")
	}
	if err := checkAllowed(fields, accountUpdatable); err != nil {
		return nil, err
	}
	if _, ok := fields["is_admin"]; ok && !actor.Admin {
		return nil, apperr.Forbidden("only admins may change the admin flag")
	}

	if raw, ok := fields["email"]; ok {
		email, isStr := raw.(string)
		if !isStr {
			return nil, apperr.Malformed("email", "type", "email must be a string")
		}
		if err := f.emailTaken(ctx, strings.ToLower(strings.TrimSpace(email)), id); err != nil {
			return nil, err
		}
	}
	// The cleartext credential stops here; only the hash travels on.
	if raw, ok := fields["password"]; ok {
		plain, isStr := raw.(string)
		if !isStr {
			return nil, apperr.Malformed("password", "type", "password must be a string")
		}
		hash, err := helpers.HashPassword(plain)
		if err != nil {
			return nil, apperr.Unexpected(err)
		}
		delete(fields, "password")
		fields["password_hash"] = hash
	}

	updated, err := f.Stores.Accounts.Update(ctx, id, fields)
	return updated, translate(err, "account", id)
}

// sendWelcome queues a welcome email; registration never fails on mail
// infrastructure.
func (f *Facade) sendWelcome(ctx context.Context, a *entity.Account) {
	if f.Pub == nil || !f.MailSend {
		return
	}
	job := mailer.EmailJob{
		To:       a.Email,
		Template: "welcome",
		Data:     map[string]any{"AppName": f.AppName, "FirstName": a.FirstName},
	}
	if err := f.Pub.PublishJSON(ctx, job); err != nil {
		f.logError(err, "queue welcome email", logrus.Fields{"email": a.Email})
	}
}
