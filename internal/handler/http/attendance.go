package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/handler/http/response"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Sync(w http.ResponseWriter, r *http.Request)
	ClearDevice(w http.ResponseWriter, r *http.Request)
	ListSyncRuns(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	// Parse query parameters
	filter := attendance.AttendanceFilter{}

	// Employee ID filter
	if employeeID := q.Get("employee_id"); employeeID != "" {
		id, err := strconv.Atoi(employeeID)
		if err != nil {
			response.BadRequest(w, "employee_id must be a number", nil)
			return
		}
		filter.EmployeeID = &id
	}

	// Date range filters
	if startDate := q.Get("from"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := q.Get("to"); endDate != "" {
		filter.EndDate = &endDate
	}

	// Pagination
	if p := q.Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil {
			filter.Page = pageNum
		}
	}
	if l := q.Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil {
			filter.Limit = limitNum
		}
	}

	// Validate filter
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.ListAttendance(ctx, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Sync implements AttendanceHandler.
func (h *attendanceHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Sync(r.Context())
	if err != nil {
		slog.Error("Device sync failed", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Device synchronized", result)
}

// ClearDevice implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClearDevice(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.ClearDevice(r.Context()); err != nil {
		slog.Error("Device clear failed", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Device attendance log cleared", nil)
}

// ListSyncRuns implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListSyncRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.attendanceService.ListSyncRuns(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, runs)
}
