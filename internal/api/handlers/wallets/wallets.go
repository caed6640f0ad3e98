package wallets

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"kantong/internal/api/handlers"
	"kantong/internal/models"
	"kantong/internal/repositories"
	"kantong/pkg/utils"
)

type Handler struct {
	DB *sql.DB
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
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
		Name    string          `json:"name"`
		Balance decimal.Decimal `json:"balance"`
		Icon    string          `json:"icon"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Name) == "" {
		utils.WriteError(w, "wallet name is required", http.StatusBadRequest)
		return
	}
	if req.Balance.IsNegative() {
		utils.WriteError(w, "opening balance cannot be negative", http.StatusBadRequest)
		return
	}
	if req.Icon == "" {
		req.Icon = "wallet"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	wallet := &models.Wallet{
		UserID:  userID,
		Name:    strings.TrimSpace(req.Name),
		Balance: req.Balance,
		Icon:    req.Icon,
	}
	if err := repositories.CreateWallet(ctx, h.DB, wallet); err != nil {
		utils.Logger.Errorf("error creating wallet: %v", err)
		utils.WriteError(w, "error creating wallet", http.StatusInternalServerError)
		return
	}

	utils.WriteJSONStatus(w, map[string]interface{}{
		"status": "success",
		"data":   wallet,
	}, http.StatusCreated)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	wallets, err := repositories.ListWalletsByOwner(ctx, h.DB, userID)
	if err != nil {
		utils.Logger.Errorf("error fetching wallets: %v", err)
		utils.WriteError(w, "error fetching wallets", http.StatusInternalServerError)
		return
	}
	if wallets == nil {
		wallets = []models.Wallet{}
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"count":  len(wallets),
		"data":   wallets,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	walletID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid wallet ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := repositories.DeleteWallet(ctx, h.DB, walletID, userID)
	if err != nil {
		// The FK from transactions is RESTRICT: a wallet the ledger still
		// references cannot be removed.
		if strings.Contains(err.Error(), "foreign key constraint") {
			utils.WriteError(w, "wallet still has transactions", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("error deleting wallet: %v", err)
		utils.WriteError(w, "error deleting wallet", http.StatusInternalServerError)
		return
	}
	if !deleted {
		utils.WriteError(w, "wallet not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
