// Package application holds the Facade: the single entry point that
// sequences cross-entity checks (existence, authorization, allow-list,
// uniqueness) before delegating to storage. Ordering is deliberate —
// existence before business rules, so a missing reference surfaces as
// not-found rather than a confusing downstream failure.
package application

import (
	"errors"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/homecove/homecove/internal/domain/repository"
	"github.com/homecove/homecove/pkg/apperr"
	"github.com/homecove/homecove/pkg/helpers"
)

// Facade orchestrates all entity operations over whichever backend is
// active. It never branches on the backend; both stores present the
// same contract. Redis, ES, GCS, and the publisher are optional — nil
// disables the corresponding side channel.
type Facade struct {
	Stores    repository.Stores
	JWT       *helpers.JWTManager
	Logger    *logrus.Logger
	Redis     *redis.Client
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
	Pub       *helpers.RabbitPublisher
	AppName   string
	MailSend  bool
}

func NewFacade(stores repository.Stores, jwt *helpers.JWTManager, logger *logrus.Logger) *Facade {
	return &Facade{Stores: stores, JWT: jwt, Logger: logger, AppName: "homecove"}
}

// translate maps a storage-layer absence onto the not-found category;
// anything else unexpected is wrapped so it surfaces as a request-fatal
// internal failure.
func translate(err error, resource, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(resource, id)
	}
	if apperr.HTTPStatus(err) != 500 {
		return err
	}
	return apperr.Unexpected(err)
}

// requireActor rejects mutating operations that lack a verified
// identity assertion before any entity logic runs.
func requireActor(actor *helpers.Claims) error {
	if actor == nil {
		return apperr.Unauthorized("")
	}
	return nil
}

// canManage is the authorization predicate: a pure function of claims
// and the owning account of the resource acted on.
func canManage(actor *helpers.Claims, ownerID string) bool {
	return actor != nil && (actor.Admin || actor.AccountID == ownerID)
}

// requireAdmin guards admin-only operations; a valid assertion alone is
// not enough.
func requireAdmin(actor *helpers.Claims) error {
	if actor == nil {
		return apperr.Unauthorized("")
	}
	if !actor.Admin {
		return apperr.Forbidden("admin privileges required")
	}
	return nil
}

// checkAllowed rejects any update payload naming a field outside the
// allow-list for that entity type. This is the single place deciding
// external mutability.
func checkAllowed(fields map[string]any, allowed map[string]bool) error {
	for field := range fields {
		if !allowed[field] {
			return apperr.Malformed(field, "not_allowed", "unexpected field: "+field)
		}
	}
	return nil
}

func (f *Facade) logError(err error, op string, fields logrus.Fields) {
	if f.Logger == nil {
		return
	}
	if fields == nil {
		fields = logrus.Fields{}
	}
	f.Logger.WithError(err).WithFields(fields).Error(op)
}
