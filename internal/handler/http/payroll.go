package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	payrollsvc "github.com/cmlabs-hris/payroll-engine-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	ListByPeriod(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	aggregator *payrollsvc.Aggregator
	verifier   *payrollsvc.Verifier
}

func NewPayrollHandler(aggregator *payrollsvc.Aggregator, verifier *payrollsvc.Verifier) PayrollHandler {
	return &PayrollHandlerImpl{aggregator: aggregator, verifier: verifier}
}

// Generate implements PayrollHandler.
func (h *PayrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	summary, err := h.aggregator.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll generated", summary)
}

// ListByPeriod implements PayrollHandler.
func (h *PayrollHandlerImpl) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	records, err := h.aggregator.ListByPeriod(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetRecord implements PayrollHandler.
func (h *PayrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	employeeID := chi.URLParam(r, "employeeID")

	record, err := h.aggregator.GetRecord(r.Context(), employeeID, periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// Verify implements PayrollHandler.
func (h *PayrollHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	result, err := h.verifier.Verify(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
