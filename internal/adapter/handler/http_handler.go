package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradewell/storefront/internal/core/domain"
	"github.com/tradewell/storefront/internal/core/service"
)

// Identity headers are set by the upstream auth layer; the engine trusts
// them and only gates on role.
const (
	headerUserID   = "X-User-ID"
	headerUserName = "X-User-Name"
	headerUserRole = "X-User-Role"

	roleCustomer = "customer"
	roleOwner    = "owner"
)

type Purchaser interface {
	Purchase(ctx context.Context, requestID, userID, username string, lines []domain.CartLine) (string, error)
}

type StockAdjuster interface {
	Adjust(ctx context.Context, actorID, itemID string, delta int) (*domain.Item, error)
}

type HTTPHandler struct {
	purchases Purchaser
	stock     StockAdjuster
	logger    *slog.Logger
}

type purchaseRequest struct {
	RequestID string            `json:"request_id"`
	Items     []domain.CartLine `json:"items"`
}

type purchaseResponse struct {
	OrderID string `json:"order_id"`
}

type stockRequest struct {
	QuantityChange int `json:"quantity_change"`
}

type errorResponse struct {
	Errors []string `json:"errors"`
}

func NewHTTPHandler(purchases Purchaser, stock StockAdjuster, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{purchases: purchases, stock: stock, logger: logger}
}

func (h *HTTPHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.HealthCheck)
	r.Post("/api/purchase", h.Purchase)
	r.Patch("/api/items/{itemID}/stock", h.AdjustStock)
	return r
}

func (h *HTTPHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, username, ok := h.identity(w, r, roleCustomer)
	if !ok {
		return
	}

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{"invalid request body"}})
		return
	}
	if req.RequestID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{"missing request_id"}})
		return
	}

	orderID, err := h.purchases.Purchase(r.Context(), req.RequestID, userID, username, req.Items)
	if err != nil {
		var cartErr *service.CartError
		switch {
		case errors.As(err, &cartErr):
			status := http.StatusBadRequest
			if cartErr.Conflict {
				status = http.StatusConflict
			}
			writeJSON(w, status, errorResponse{Errors: cartErr.Problems})
		case errors.Is(err, service.ErrDuplicateRequest):
			writeJSON(w, http.StatusConflict, errorResponse{Errors: []string{"duplicate request"}})
		case errors.Is(err, service.ErrStockConflict):
			writeJSON(w, http.StatusConflict, errorResponse{Errors: []string{service.ErrStockConflict.Error()}})
		default:
			h.logger.Error("purchase failed", "user_id", userID, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: []string{"internal error"}})
		}
		return
	}

	writeJSON(w, http.StatusCreated, purchaseResponse{OrderID: orderID})
}

func (h *HTTPHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := h.identity(w, r, roleOwner)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")

	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{"invalid request body"}})
		return
	}

	item, err := h.stock.Adjust(r.Context(), actorID, itemID, req.QuantityChange)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDelta):
			writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{service.ErrInvalidDelta.Error()}})
		case errors.Is(err, service.ErrItemNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Errors: []string{"item not found"}})
		case errors.Is(err, service.ErrInsufficientStock):
			writeJSON(w, http.StatusConflict, errorResponse{Errors: []string{err.Error()}})
		default:
			h.logger.Error("stock adjustment failed", "item_id", itemID, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: []string{"internal error"}})
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) identity(w http.ResponseWriter, r *http.Request, role string) (userID, username string, ok bool) {
	userID = r.Header.Get(headerUserID)
	username = r.Header.Get(headerUserName)
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Errors: []string{"missing identity"}})
		return "", "", false
	}
	if r.Header.Get(headerUserRole) != role {
		writeJSON(w, http.StatusForbidden, errorResponse{Errors: []string{"forbidden"}})
		return "", "", false
	}
	return userID, username, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
