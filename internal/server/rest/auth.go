package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sireesha-siri/geotag-plants/internal/common"
	"github.com/sireesha-siri/geotag-plants/internal/server/models"
	"github.com/sireesha-siri/geotag-plants/internal/server/services"
)

// UserProvider is the slice of UserService the auth handlers need.
type UserProvider interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthHandler serves registration, login, and refresh-token rotation.
type AuthHandler struct {
	users UserProvider
}

func NewAuthHandler(users UserProvider) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "username and password are required")
		return
	}
	if len(strings.TrimSpace(req.Username)) < 3 || len(req.Password) < 6 {
		Error(ctx, http.StatusBadRequest, "username must be 3+ chars, password 6+")
		return
	}

	_, err := h.users.Register(ctx.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			Error(ctx, http.StatusConflict, "username already taken")
			return
		}
		Error(ctx, http.StatusInternalServerError, "registration failed")
		return
	}

	Success(ctx, http.StatusCreated, nil)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "username and password are required")
		return
	}

	pair, err := h.users.Login(ctx.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			Error(ctx, http.StatusUnauthorized, "invalid username or password")
			return
		}
		Error(ctx, http.StatusInternalServerError, "login failed")
		return
	}

	Success(ctx, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(ctx *gin.Context) {
	var req refreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "refreshToken is required")
		return
	}

	pair, err := h.users.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			Error(ctx, http.StatusUnauthorized, "invalid or expired refresh token")
			return
		}
		Error(ctx, http.StatusInternalServerError, "token refresh failed")
		return
	}

	Success(ctx, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
