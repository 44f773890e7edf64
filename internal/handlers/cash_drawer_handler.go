package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cashier-api/internal/drawer"
	"cashier-api/internal/middleware"
	"cashier-api/internal/money"
	"cashier-api/internal/services"
)

// CashDrawerHandler handles drawer endpoints
type CashDrawerHandler struct {
	cashDrawerService *services.CashDrawerService
}

func NewCashDrawerHandler(cashDrawerService *services.CashDrawerService) *CashDrawerHandler {
	return &CashDrawerHandler{
		cashDrawerService: cashDrawerService,
	}
}

// POST /drawer/open
func (h *CashDrawerHandler) OpenCashDrawer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DeviceID string `json:"device_id"`
	}
	// empty body is fine, the device is optional
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}

	if err := h.cashDrawerService.OpenDrawer(r.Context(), middleware.GetTeller(r), body.DeviceID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "1",
	})
}

// POST /drawer/settle
func (h *CashDrawerHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price *money.Cents `json:"price"`
		Paid  *money.Cents `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	if body.Price == nil || body.Paid == nil {
		writeError(w, http.StatusBadRequest, errors.New("price and paid are required"))
		return
	}

	res, err := h.cashDrawerService.Settle(r.Context(), middleware.GetTeller(r), *body.Price, *body.Paid)
	if err != nil {
		if errors.Is(err, drawer.ErrInvalidAmount) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	status := "ok"
	if !res.OK() {
		status = string(res.Outcome)
	}
	writeJSON(w, http.StatusOK, status, res)
}

// GET /drawer
func (h *CashDrawerHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	inventory, total := h.cashDrawerService.Inventory(r.Context())

	writeJSON(w, http.StatusOK, "ok", map[string]interface{}{
		"inventory": inventory,
		"total":     total,
	})
}
