package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-engine-go/internal/service/timesheet"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	RecordPunches(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	engine *timesheet.Engine
}

func NewAttendanceHandler(engine *timesheet.Engine) AttendanceHandler {
	return &AttendanceHandlerImpl{engine: engine}
}

// RecordPunches implements AttendanceHandler.
func (h *AttendanceHandlerImpl) RecordPunches(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordPunchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.engine.RecordPunches(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByEmployee implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	from, to, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	records, err := h.engine.ListByEmployeeRange(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// parseDateRange reads the from/to query parameters shared by the range
// listing endpoints. It writes the error response itself on bad input.
func parseDateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "Invalid 'from' date, expected YYYY-MM-DD", nil)
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "Invalid 'to' date, expected YYYY-MM-DD", nil)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
