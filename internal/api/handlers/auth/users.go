package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"kantong/internal/api/handlers"
	"kantong/internal/models"
	"kantong/internal/repositories"
	"kantong/pkg/utils"
)

const refreshTokenBytes = 32

type Handler struct {
	DB *sql.DB
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{DB: db}
}

func refreshTokenTTL() time.Duration {
	days, err := strconv.Atoi(os.Getenv("REFRESH_TOKEN_EXP_DAYS"))
	if err != nil || days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type request struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid or unexpected fields in body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := handlers.CheckBlankFields(req); err != nil {
		utils.WriteError(w, "missing required fields", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		utils.WriteError(w, "password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := &models.User{Username: req.Username, Email: req.Email, Password: hashed}
	if err := repositories.CreateUser(ctx, h.DB, user); err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.WriteError(w, "email or username already exists", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to insert user: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	user.IsActive = true
	utils.WriteJSONStatus(w, map[string]interface{}{
		"status": "success",
		"data":   user,
	}, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := repositories.GetUserByEmail(ctx, h.DB, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, sql.ErrNoRows) {
		utils.WriteError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		utils.Logger.Errorf("failed to fetch user: %v", err)
		utils.WriteError(w, "error logging in", http.StatusInternalServerError)
		return
	}
	if !user.IsActive {
		utils.WriteError(w, "account is deactivated", http.StatusForbidden)
		return
	}
	if err := utils.VerifyPassword(req.Password, user.Password); err != nil {
		utils.WriteError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	h.issueTokenPair(ctx, w, r, user)
}

// Refresh rotates the refresh token: the presented token is revoked and a
// new access/refresh pair is issued. A replayed (already-revoked) token is
// rejected.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type request struct {
		RefreshToken string `json:"refresh_token"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		utils.WriteError(w, "refresh_token is required", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tokenHash := utils.HashToken(req.RefreshToken)
	stored, err := repositories.GetRefreshTokenByHash(ctx, h.DB, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		utils.WriteError(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}
	if err != nil {
		utils.Logger.Errorf("failed to fetch refresh token: %v", err)
		utils.WriteError(w, "error refreshing token", http.StatusInternalServerError)
		return
	}

	if _, err := repositories.RevokeRefreshToken(ctx, h.DB, tokenHash); err != nil {
		utils.Logger.Errorf("failed to revoke refresh token: %v", err)
		utils.WriteError(w, "error refreshing token", http.StatusInternalServerError)
		return
	}

	user, err := repositories.GetUserByID(ctx, h.DB, stored.UserID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch user: %v", err)
		utils.WriteError(w, "error refreshing token", http.StatusInternalServerError)
		return
	}

	h.issueTokenPair(ctx, w, r, user)
}

// Logout revokes the presented refresh token, or every token the user holds
// when all=true.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		RefreshToken string `json:"refresh_token"`
		All          bool   `json:"all"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if req.All {
		if _, err := repositories.RevokeAllRefreshTokensForUser(ctx, h.DB, userID); err != nil {
			utils.Logger.Errorf("failed to revoke refresh tokens: %v", err)
			utils.WriteError(w, "error logging out", http.StatusInternalServerError)
			return
		}
	} else if req.RefreshToken != "" {
		if _, err := repositories.RevokeRefreshToken(ctx, h.DB, utils.HashToken(req.RefreshToken)); err != nil {
			utils.Logger.Errorf("failed to revoke refresh token: %v", err)
			utils.WriteError(w, "error logging out", http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "logged out",
	})
}

func (h *Handler) issueTokenPair(ctx context.Context, w http.ResponseWriter, r *http.Request, user *models.User) {
	accessToken, err := utils.SignAccessToken(user.ID, user.Username, user.IsSuperuser)
	if err != nil {
		utils.WriteError(w, "error issuing token", http.StatusInternalServerError)
		return
	}

	refreshToken, err := utils.GenerateSecureToken(refreshTokenBytes)
	if err != nil {
		utils.WriteError(w, "error issuing token", http.StatusInternalServerError)
		return
	}

	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	stored := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(refreshTokenTTL()).UTC().Format("2006-01-02 15:04:05"),
		UserAgent: r.UserAgent(),
		IPAddress: ip,
	}
	if err := repositories.InsertRefreshToken(ctx, h.DB, stored); err != nil {
		utils.Logger.Errorf("failed to store refresh token: %v", err)
		utils.WriteError(w, "error issuing token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	utils.WriteJSON(w, map[string]interface{}{
		"status":        "success",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
		"user":          user,
	})
}
