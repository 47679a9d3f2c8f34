package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/homecove/homecove/internal/application"
	"github.com/homecove/homecove/internal/interface/middleware"
	"github.com/homecove/homecove/pkg/helpers"
	"github.com/homecove/homecove/pkg/response"
	"github.com/homecove/homecove/pkg/validation"
)

type AuthHandler struct {
	Facade  *application.Facade
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(f *application.Facade, logger *logrus.Logger, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Facade: f, Logger: logger, Cookies: cookies}
}

type registerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required,pwd"`
	IsAdmin   bool   `json:"is_admin"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	account, err := h.Facade.RegisterAccount(c.Request.Context(), application.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	}, middleware.ClaimsFrom(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, account.Map(), "account created", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	account, pair, err := h.Facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"account":      account.Map(),
		"access_token": pair.AccessToken,
	}, "login successful", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	access, exp, err := h.Facade.Refresh(c.Request.Context(), refresh)
	if err != nil {
		writeErr(c, err)
		return
	}
	h.Cookies.SetAccess(c, access, exp)
	response.Success(c, http.StatusOK, gin.H{"access_token": access}, "token refreshed", gin.H{"access_expires_at": exp})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := middleware.ClaimsFrom(c); claims != nil {
		h.Facade.Logout(c.Request.Context(), claims.AccountID)
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}
