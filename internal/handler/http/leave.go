package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	leavesvc "github.com/cmlabs-hris/payroll-engine-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	ListBalances(w http.ResponseWriter, r *http.Request)
	Deduct(w http.ResponseWriter, r *http.Request)
	Restore(w http.ResponseWriter, r *http.Request)
	Sync(w http.ResponseWriter, r *http.Request)
	Rollover(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	ledger *leavesvc.Ledger
}

func NewLeaveHandler(ledger *leavesvc.Ledger) LeaveHandler {
	return &LeaveHandlerImpl{ledger: ledger}
}

// GetBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	leaveTypeID := chi.URLParam(r, "leaveTypeID")
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	balance, err := h.ledger.GetBalance(r.Context(), employeeID, leaveTypeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// ListBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	balances, err := h.ledger.ListBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// Deduct implements LeaveHandler.
func (h *LeaveHandlerImpl) Deduct(w http.ResponseWriter, r *http.Request) {
	var req leave.DeductBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := h.ledger.Deduct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance deducted", balance)
}

// Restore implements LeaveHandler.
func (h *LeaveHandlerImpl) Restore(w http.ResponseWriter, r *http.Request) {
	var req leave.DeductBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := h.ledger.Restore(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance restored", balance)
}

// Sync implements LeaveHandler.
func (h *LeaveHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	var req leave.SyncBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := h.ledger.Sync(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance synchronized", balance)
}

// Rollover implements LeaveHandler.
func (h *LeaveHandlerImpl) Rollover(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	balances, err := h.ledger.Rollover(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balances rolled over", balances)
}

func parseYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2200 {
		response.BadRequest(w, "Invalid 'year' query parameter", nil)
		return 0, false
	}
	return year, true
}
