package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	deductionsvc "github.com/cmlabs-hris/payroll-engine-go/internal/service/deduction"
	"github.com/go-chi/chi/v5"
)

type DeductionHandler interface {
	CreateRule(w http.ResponseWriter, r *http.Request)
	DeleteRule(w http.ResponseWriter, r *http.Request)
	ListRules(w http.ResponseWriter, r *http.Request)
	ValidateTables(w http.ResponseWriter, r *http.Request)
}

type DeductionHandlerImpl struct {
	resolver *deductionsvc.Resolver
}

func NewDeductionHandler(resolver *deductionsvc.Resolver) DeductionHandler {
	return &DeductionHandlerImpl{resolver: resolver}
}

// CreateRule implements DeductionHandler.
func (h *DeductionHandlerImpl) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req deduction.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rule, err := h.resolver.CreateRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction rule created", rule)
}

// DeleteRule implements DeductionHandler.
func (h *DeductionHandlerImpl) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.resolver.DeleteRule(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deduction rule deleted", nil)
}

// ListRules implements DeductionHandler.
func (h *DeductionHandlerImpl) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.resolver.ListRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rules)
}

// ValidateTables implements DeductionHandler. Overlaps come back in the
// body; finding them is a successful validation run, not an error.
func (h *DeductionHandlerImpl) ValidateTables(w http.ResponseWriter, r *http.Request) {
	violations, err := h.resolver.ValidateTables(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"valid":      len(violations) == 0,
		"violations": violations,
	})
}
