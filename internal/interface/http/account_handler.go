package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/homecove/homecove/internal/application"
	"github.com/homecove/homecove/internal/interface/middleware"
	"github.com/homecove/homecove/pkg/response"
)

type AccountHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewAccountHandler(f *application.Facade, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Facade: f, Logger: logger}
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.Facade.GetAllAccounts(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]map[string]any, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Map())
	}
	response.Success(c, http.StatusOK, out, "accounts", gin.H{"count": len(out)})
}

func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.Facade.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, account.Map(), "account", nil)
}

// Me answers with the caller's own account.
func (h *AccountHandler) Me(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
		return
	}
	account, err := h.Facade.GetAccount(c.Request.Context(), claims.AccountID)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, account.Map(), "account", nil)
}

// Update applies a partial update. The payload is a free-form field
// map; the facade enforces the allow-list and ownership.
func (h *AccountHandler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	account, err := h.Facade.UpdateAccount(c.Request.Context(), c.Param("id"), fields, middleware.ClaimsFrom(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, account.Map(), "account updated", nil)
}
