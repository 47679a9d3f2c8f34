package entity

import (
	"strings"

	"github.com/homecove/homecove/pkg/apperr"
)

// Account is a registered user of the marketplace. The credential is
// held only as a bcrypt hash; the cleartext never reaches this type.
type Account struct {
	Base
	FirstName    string
	LastName     string
	Email        string
	IsAdmin      bool
	PasswordHash string
}

// NewAccount validates every field before the instance becomes visible
// to storage. passwordHash must already be hashed by the caller.
func NewAccount(firstName, lastName, email, passwordHash string, isAdmin bool) (*Account, error) {
	a := &Account{Base: newBase()}
	if err := a.setFirstName(firstName); err != nil {
		return nil, err
	}
	if err := a.setLastName(lastName); err != nil {
		return nil, err
	}
	if err := a.setEmail(email); err != nil {
		return nil, err
	}
	if err := a.setPasswordHash(passwordHash); err != nil {
		return nil, err
	}
	a.IsAdmin = isAdmin
	return a, nil
}

// Apply assigns mutable fields, re-running the same validation the
// constructor uses. Unknown fields are rejected.
func (a *Account) Apply(fields map[string]any) error {
	for field, value := range fields {
		var err error
		switch field {
		case "first_name":
			var s string
			if s, err = asString(field, value); err == nil {
				err = a.setFirstName(s)
			}
		case "last_name":
			var s string
			if s, err = asString(field, value); err == nil {
				err = a.setLastName(s)
			}
		case "email":
			var s string
			if s, err = asString(field, value); err == nil {
				err = a.setEmail(s)
			}
		case "is_admin":
			var b bool
			if b, err = asBool(field, value); err == nil {
				a.IsAdmin = b
			}
		case "password_hash":
			var s string
			if s, err = asString(field, value); err == nil {
				err = a.setPasswordHash(s)
			}
		default:
			err = unknownField(field)
		}
		if err != nil {
			return err
		}
	}
	a.Touch()
	return nil
}

func (a *Account) setFirstName(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return apperr.Invalid("first_name", "required", "first_name is required and cannot be empty")
	}
	if len(v) > 50 {
		return apperr.Invalid("first_name", "max_length", "first_name is too long, more than 50 characters")
	}
	a.FirstName = v
	return nil
}

func (a *Account) setLastName(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return apperr.Invalid("last_name", "required", "last_name is required and cannot be empty")
	}
	if len(v) > 50 {
		return apperr.Invalid("last_name", "max_length", "last_name is too long, more than 50 characters")
	}
	a.LastName = v
	return nil
}

// setEmail normalizes to lower case before validation and storage, so
// email uniqueness is case-insensitive system-wide.
func (a *Account) setEmail(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return apperr.Invalid("email", "required", "email is required and cannot be empty")
	}
	if !emailValid(v) {
		return apperr.Invalid("email", "format", "email format is invalid")
	}
	a.Email = v
	return nil
}

func (a *Account) setPasswordHash(v string) error {
	if v == "" {
		return apperr.Invalid("password", "required", "password is required")
	}
	a.PasswordHash = v
	return nil
}

// emailValid requires a non-empty local part, exactly one @, and a
// dotted domain with a non-empty label on each side of the dot.
func emailValid(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || strings.Count(email, "@") != 1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// Map renders the account for external consumption. The credential
// hash is never included.
func (a *Account) Map() map[string]any {
	return map[string]any{
		"id":         a.ID,
		"first_name": a.FirstName,
		"last_name":  a.LastName,
		"email":      a.Email,
		"is_admin":   a.IsAdmin,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	}
}
