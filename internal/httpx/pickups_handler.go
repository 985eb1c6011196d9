package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kedaikopi/go-coffee-pickups.git/internal/pickups"
	"github.com/kedaikopi/go-coffee-pickups.git/internal/wallet"
)

type PickupsHandler struct {
	Service *pickups.Service
	Wallet  *wallet.Service
}

type SchedulePickupReq struct {
	UserID string              `json:"user_id"`
	Date   string              `json:"date"`
	Time   string              `json:"time"`
	Items  []pickups.ItemInput `json:"items"`
}

type SchedulePickupResp struct {
	PickupID string          `json:"pickup_id"`
	Total    decimal.Decimal `json:"total"`
	Status   pickups.Status  `json:"status"`
}

type DepositReq struct {
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type WalletResp struct {
	Balance      decimal.Decimal      `json:"balance"`
	Transactions []wallet.Transaction `json:"transactions"`
}

func (h *PickupsHandler) Register(r *chi.Mux) {
	r.Get("/pickups", h.listPickups)
	r.Post("/pickups", h.schedulePickup)
	r.Post("/pickups/{id}/cancel", h.cancelPickup)
	r.Get("/wallet", h.getWallet)
	r.Post("/wallet/deposit", h.deposit)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError memetakan taksonomi error ke status code; message-nya
// dirender apa adanya untuk ditampilkan ke user.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, pickups.ErrEmptyPickup),
		errors.Is(err, pickups.ErrInvalidQuantity),
		errors.Is(err, pickups.ErrInvalidPrice),
		errors.Is(err, wallet.ErrInvalidAmount):
		code = http.StatusBadRequest
	case errors.Is(err, wallet.ErrInsufficientFunds):
		code = http.StatusPaymentRequired
	case errors.Is(err, pickups.ErrNotFound):
		code = http.StatusNotFound
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func userID(r *http.Request) string {
	return r.Header.Get("X-User-Id")
}

func (h *PickupsHandler) listPickups(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing X-User-Id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	out, err := h.Service.List(ctx, uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PickupsHandler) schedulePickup(w http.ResponseWriter, r *http.Request) {
	var req SchedulePickupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.Date == "" || req.Time == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Service.Schedule(ctx, req.UserID, req.Date, req.Time, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SchedulePickupResp{
		PickupID: p.ID.String(),
		Total:    p.Total,
		Status:   p.Status,
	})
}

func (h *PickupsHandler) cancelPickup(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing X-User-Id"})
		return
	}

	pickupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid pickup id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Service.Cancel(ctx, uid, pickupID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(pickups.StatusCancelled)})
}

func (h *PickupsHandler) getWallet(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing X-User-Id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	balance, err := h.Wallet.Balance(ctx, uid)
	if err != nil {
		writeError(w, err)
		return
	}
	txs, err := h.Wallet.Transactions(ctx, uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, WalletResp{Balance: balance, Transactions: txs})
}

func (h *PickupsHandler) deposit(w http.ResponseWriter, r *http.Request) {
	var req DepositReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	t, err := h.Wallet.Deposit(ctx, req.UserID, req.Amount, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
