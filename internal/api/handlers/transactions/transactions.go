package transactions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kantong/internal/api/handlers"
	"kantong/internal/models"
	"kantong/internal/repositories"
	"kantong/internal/services"
	"kantong/pkg/utils"
)

// ledgerEngine is what these handlers need from the ledger; the concrete
// *services.Ledger satisfies it, tests substitute a stub.
type ledgerEngine interface {
	CreateTransaction(ctx context.Context, ownerID int, in services.CreateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID, ownerID int) (bool, error)
	TransferFunds(ctx context.Context, ownerID int, in services.TransferInput) (*services.TransferResult, error)
}

type summaryProvider interface {
	Summary(ctx context.Context, ownerID int) (*services.Summary, error)
}

type Handler struct {
	Ledger    ledgerEngine
	Analytics summaryProvider
	DB        *sql.DB
}

func NewHandler(ledger *services.Ledger, analytics *services.Analytics, db *sql.DB) *Handler {
	return &Handler{Ledger: ledger, Analytics: analytics, DB: db}
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

	var req services.CreateTransactionInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transaction, err := h.Ledger.CreateTransaction(ctx, userID, req)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	utils.WriteJSONStatus(w, map[string]interface{}{
		"status": "success",
		"data":   transaction,
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

	typeFilter := strings.ToUpper(r.URL.Query().Get("type"))
	if typeFilter != "" && !models.ValidTransactionType(typeFilter) {
		typeFilter = ""
	}
	limit, offset := utils.GetPaginationParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	transactions, err := repositories.ListTransactions(ctx, h.DB, userID, typeFilter, limit, offset)
	if err != nil {
		utils.Logger.Errorf("error fetching transactions: %v", err)
		utils.WriteError(w, "error fetching transactions", http.StatusInternalServerError)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"count":  len(transactions),
		"data":   transactions,
	})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.Analytics.Summary(ctx, userID)
	if err != nil {
		utils.Logger.Errorf("error fetching summary: %v", err)
		utils.WriteError(w, "error fetching summary", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, summary)
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

	transactionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deleted, err := h.Ledger.DeleteTransaction(ctx, transactionID, userID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if !deleted {
		utils.WriteError(w, "transaction not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req services.TransferInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.Ledger.TransferFunds(ctx, userID, req)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	utils.WriteJSONStatus(w, map[string]interface{}{
		"message":       "Transfer successful",
		"amount":        result.Amount,
		"source_wallet": result.SourceWallet,
		"dest_wallet":   result.DestWallet,
		"transactions":  []*models.Transaction{result.OutTransaction, result.InTransaction},
	}, http.StatusCreated)
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrWalletNotFound),
		errors.Is(err, services.ErrSourceWalletNotFound),
		errors.Is(err, services.ErrDestWalletNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrTransactionNotFound):
		utils.WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrCategoryNotAccessible):
		utils.WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrCategoryTypeMismatch),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrSameWalletTransfer),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidType),
		errors.Is(err, services.ErrInvalidDescription),
		errors.Is(err, services.ErrInvalidDate):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		utils.Logger.Errorf("ledger operation failed: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
