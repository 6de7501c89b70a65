package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PeriodHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type PeriodHandlerImpl struct {
	repo period.PeriodRepository
}

func NewPeriodHandler(repo period.PeriodRepository) PeriodHandler {
	return &PeriodHandlerImpl{repo: repo}
}

type createPeriodRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// Create implements PeriodHandler.
func (h *PeriodHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req createPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.BadRequest(w, "Invalid start_date, expected YYYY-MM-DD", nil)
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.BadRequest(w, "Invalid end_date, expected YYYY-MM-DD", nil)
		return
	}

	p := period.PayPeriod{
		ID:        uuid.NewString(),
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	}
	if err := p.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.repo.Create(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay period created", created)
}

// Get implements PeriodHandler.
func (h *PeriodHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, p)
}

// List implements PeriodHandler.
func (h *PeriodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	periods, err := h.repo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, periods)
}
