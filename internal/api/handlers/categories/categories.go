package categories

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
	"kantong/pkg/utils"
)

type Handler struct {
	DB *sql.DB
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{DB: db}
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
		utils.WriteError(w, "type must be INCOME or EXPENSE", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categories, err := repositories.ListCategories(ctx, h.DB, userID, typeFilter)
	if err != nil {
		utils.Logger.Errorf("error fetching categories: %v", err)
		utils.WriteError(w, "error fetching categories", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"count":  len(categories),
		"data":   categories,
	})
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
		Name   string `json:"name"`
		Type   string `json:"type"`
		Icon   string `json:"icon"`
		Global bool   `json:"global"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Name = strings.TrimSpace(req.Name)
	req.Type = strings.ToUpper(req.Type)
	if req.Name == "" {
		utils.WriteError(w, "category name is required", http.StatusBadRequest)
		return
	}
	if !models.ValidTransactionType(req.Type) {
		utils.WriteError(w, "type must be INCOME or EXPENSE", http.StatusBadRequest)
		return
	}
	if req.Icon == "" {
		req.Icon = "default"
	}

	// Only superusers may create categories visible to everyone.
	if req.Global && !handlers.IsSuperuser(r) {
		utils.WriteError(w, "only superusers can create global categories", http.StatusForbidden)
		return
	}

	category := &models.Category{Name: req.Name, Type: req.Type, Icon: req.Icon}
	if !req.Global {
		category.UserID = &userID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := repositories.CreateCategory(ctx, h.DB, category); err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.WriteError(w, "category already exists", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("error creating category: %v", err)
		utils.WriteError(w, "error creating category", http.StatusInternalServerError)
		return
	}

	utils.WriteJSONStatus(w, map[string]interface{}{
		"status": "success",
		"data":   category,
	}, http.StatusCreated)
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

	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category, err := repositories.GetCategory(ctx, h.DB, categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		utils.WriteError(w, "category not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.Logger.Errorf("error fetching category: %v", err)
		utils.WriteError(w, "error deleting category", http.StatusInternalServerError)
		return
	}

	var deleted bool
	if category.IsGlobal {
		if !handlers.IsSuperuser(r) {
			utils.WriteError(w, "only superusers can delete global categories", http.StatusForbidden)
			return
		}
		deleted, err = repositories.DeleteGlobalCategory(ctx, h.DB, categoryID)
	} else {
		deleted, err = repositories.DeleteCategory(ctx, h.DB, categoryID, userID)
	}
	if err != nil {
		if strings.Contains(err.Error(), "foreign key constraint") {
			utils.WriteError(w, "category still has transactions", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("error deleting category: %v", err)
		utils.WriteError(w, "error deleting category", http.StatusInternalServerError)
		return
	}
	if !deleted {
		utils.WriteError(w, "category not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
