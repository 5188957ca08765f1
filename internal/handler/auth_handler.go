package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"noteapp-api/internal/apperr"
	"noteapp-api/internal/auth"
	"noteapp-api/internal/model"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func (h *Handler) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		h.fail(c, apperr.Validation("email and password required"))
		return
	}
	if len(req.Password) < 8 {
		h.fail(c, apperr.Validation("password too short"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	u := &model.User{Email: req.Email, PasswordHash: hash}
	if err := h.store.CreateUser(c, u); err != nil {
		// unique violation = dup email, but don't reveal that
		h.fail(c, apperr.Conflict("registration failed"))
		return
	}

	h.log.Info().Int64("user_id", u.ID).Msg("registered user")
	c.JSON(http.StatusCreated, userResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		h.fail(c, apperr.Validation("email and password required"))
		return
	}

	u, err := h.store.UserByEmail(c, req.Email)
	if err != nil {
		h.fail(c, apperr.Unauthorized("invalid credentials"))
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		h.fail(c, apperr.Unauthorized("invalid credentials"))
		return
	}

	resp, err := h.issueTokens(c, u.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) issueTokens(c *gin.Context, uid int64) (*tokenResponse, error) {
	access, err := auth.MakeToken(uid, h.cfg.JWTSecret, h.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if _, err := h.store.CreateRefreshToken(c, uid, hash, time.Now().Add(h.cfg.RefreshTokenTTL)); err != nil {
		return nil, err
	}
	return &tokenResponse{AccessToken: access, RefreshToken: raw, TokenType: "bearer"}, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) handleRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		h.fail(c, apperr.Validation("refresh_token required"))
		return
	}

	rt, err := h.store.GetRefreshTokenByHash(c, auth.HashRefreshToken(req.RefreshToken))
	if err != nil {
		h.fail(c, err)
		return
	}
	if rt.Revoked {
		// reuse of a rotated token: assume theft, kill the chain
		if err := h.store.RevokeAllRefreshTokens(c, rt.UserID); err != nil {
			h.fail(c, err)
			return
		}
		h.log.Warn().Int64("user_id", rt.UserID).Msg("revoked refresh token reused")
		h.fail(c, apperr.Unauthorized("invalid refresh token"))
		return
	}
	if time.Now().After(rt.ExpiresAt) {
		h.fail(c, apperr.Unauthorized("refresh token expired"))
		return
	}

	access, err := auth.MakeToken(rt.UserID, h.cfg.JWTSecret, h.cfg.AccessTokenTTL)
	if err != nil {
		h.fail(c, err)
		return
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.fail(c, err)
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(c, rt.ID, newID, rt.UserID, hash, time.Now().Add(h.cfg.RefreshTokenTTL)); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: access, RefreshToken: raw, TokenType: "bearer"})
}

func (h *Handler) handleLogout(c *gin.Context) {
	if err := h.store.RevokeAllRefreshTokens(c, userID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleMe(c *gin.Context) {
	u, err := h.store.UserByID(c, userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt})
}
