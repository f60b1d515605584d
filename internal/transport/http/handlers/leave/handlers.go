package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"resourcehub/internal/domain/auth"
	"resourcehub/internal/domain/directory"
	"resourcehub/internal/domain/leave"
	"resourcehub/internal/transport/http/api"
	"resourcehub/internal/transport/http/middleware"
	"resourcehub/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.LeaveSubmit })).Post("/", h.handleCreate)
		r.With(middleware.RequireAuth).Get("/", h.handleList)
		r.With(middleware.RequireAuth).Get("/{requestID}", h.handleGet)
		r.With(middleware.RequireAuth).Delete("/{requestID}", h.handleCancel)
	})

	r.Route("/leave-manager", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/pending", h.handlePending)
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.LeaveHRReview })).Post("/{requestID}/hr-approve", h.handleHRApprove)
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.LeaveTLDecide })).Post("/{requestID}/tl-decision", h.handleTLDecision)
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.LeavePMDecide })).Post("/{requestID}/pm-decision", h.handlePMDecision)
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.LeaveReviewAll })).Get("/{requestID}/risk-analysis", h.handleRiskAnalysis)
	})

	r.Route("/leave-conflicts", func(r chi.Router) {
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.LeaveReviewAll })).Get("/", h.handleConflicts)
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.LeaveReviewAll })).Get("/analyze/{requestID}", h.handleAnalyze)
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.LeaveReviewAll })).Get("/analyze/{requestID}/export", h.handleAnalyzeExport)
	})
}

// failFromError translates domain sentinel errors into the HTTP taxonomy.
func failFromError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, leave.ErrNotFound), errors.Is(err, directory.ErrEmployeeNotFound), errors.Is(err, directory.ErrTaskNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), requestID)
	case errors.Is(err, leave.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), requestID)
	case errors.Is(err, leave.ErrInvalidArgument):
		api.Fail(w, http.StatusBadRequest, "invalid_argument", err.Error(), requestID)
	case errors.Is(err, leave.ErrUpstreamUnavailable):
		api.Fail(w, http.StatusBadGateway, "upstream_unavailable", "a collaborating service is unavailable", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

type createRequest struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Days      int    `json:"days"`
	Reason    string `json:"reason"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("leaveType", payload.LeaveType, "leave type is required")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if payload.Days < 1 {
		v.Add("days", "must be at least 1")
	}
	leaveType, err := leave.ParseLeaveType(strings.TrimSpace(payload.LeaveType))
	if err != nil && payload.LeaveType != "" {
		v.Add("leaveType", err.Error())
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	request, err := h.Service.Submit(r.Context(), user.UserID, leave.CreateInput{
		Type:      leaveType,
		StartDate: start,
		EndDate:   end,
		Days:      payload.Days,
		Reason:    payload.Reason,
	})
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	filter := leave.ListFilter{
		EmployeeID: r.URL.Query().Get("employeeId"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := leave.ParseStatus(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_argument", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		filter.Status = status
	}
	if raw := r.URL.Query().Get("leaveType"); raw != "" {
		leaveType, err := leave.ParseLeaveType(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_argument", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		filter.Type = leaveType
	}
	page := shared.ParsePagination(r, 50, 200)
	filter.Limit = page.Limit
	filter.Offset = page.Offset

	requests, total, err := h.Service.List(r.Context(), user.Actor(), filter)
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"items": requests,
		"total": total,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"), user.Actor())
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.Cancel(r.Context(), chi.URLParam(r, "requestID"), user.Actor())
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	entries, err := h.Service.PendingForActor(r.Context(), user.Actor())
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

type reviewRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) handleHRApprove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload reviewRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	request, err := h.Service.HRApprove(r.Context(), chi.URLParam(r, "requestID"), user.Actor(), payload.Notes)
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

type decisionRequest struct {
	Action string `json:"action"`
	Notes  string `json:"notes"`
}

func (h *Handler) handleTLDecision(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	action, err := leave.ParseTLAction(strings.TrimSpace(payload.Action))
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.TLDecide(r.Context(), chi.URLParam(r, "requestID"), user.Actor(), action, payload.Notes)
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePMDecision(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	action, err := leave.ParsePMAction(strings.TrimSpace(payload.Action))
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.PMDecide(r.Context(), chi.URLParam(r, "requestID"), user.Actor(), action, payload.Notes)
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRiskAnalysis(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"), user.Actor())
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	risk, err := h.Service.AssessRisk(r.Context(), request.EmployeeID, request.Days)
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"request": request,
		"risk":    risk,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleConflicts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var statusFilter leave.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := leave.ParseStatus(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_argument", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		statusFilter = status
	}
	var severityFilter directory.Severity
	if raw := r.URL.Query().Get("severity"); raw != "" {
		severity, err := directory.ParseSeverity(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_argument", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		severityFilter = severity
	}

	summaries, err := h.Service.Conflicts(r.Context(), user.Actor(), statusFilter, severityFilter)
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summaries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.AnalyzeConflict(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAnalyzeExport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.AnalyzeConflict(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="leave-conflict-`+report.RequestID+`.pdf"`)
	if err := leave.WriteConflictReportPDF(w, report); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}
}
