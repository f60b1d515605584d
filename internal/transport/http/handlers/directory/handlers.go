package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"resourcehub/internal/domain/auth"
	"resourcehub/internal/domain/directory"
	"resourcehub/internal/domain/incidents"
	"resourcehub/internal/domain/leave"
	"resourcehub/internal/transport/http/api"
	"resourcehub/internal/transport/http/middleware"
)

type Handler struct {
	Directory directory.Directory
	Leave     *leave.Service
	Incidents *incidents.Service
}

func NewHandler(dir directory.Directory, leaveSvc *leave.Service, incidentSvc *incidents.Service) *Handler {
	return &Handler{Directory: dir, Leave: leaveSvc, Incidents: incidentSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.DirectoryRead })).Get("/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.LeaveReviewAll })).Get("/{employeeID}/risk", h.handleRisk)
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.LeaveReviewAll })).Get("/{employeeID}/alternate", h.handleAlternate)
	})

	r.Route("/incidents", func(r chi.Router) {
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.DirectoryRead })).Get("/{incidentID}", h.handleGetIncident)
		r.With(middleware.RequireCapability(func(c auth.Capabilities) bool { return c.IncidentResolve })).Post("/{incidentID}/resolve", h.handleResolveIncident)
	})
}

func failFromError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, directory.ErrEmployeeNotFound),
		errors.Is(err, directory.ErrTaskNotFound),
		errors.Is(err, incidents.ErrNotFound),
		errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), requestID)
	case errors.Is(err, leave.ErrUpstreamUnavailable):
		api.Fail(w, http.StatusBadGateway, "upstream_unavailable", "a collaborating service is unavailable", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Directory.Employee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRisk(w http.ResponseWriter, r *http.Request) {
	days := 1
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			api.Fail(w, http.StatusBadRequest, "invalid_argument", "days must be a positive integer", middleware.GetRequestID(r.Context()))
			return
		}
		days = parsed
	}

	risk, err := h.Leave.AssessRisk(r.Context(), chi.URLParam(r, "employeeID"), days)
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, risk, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAlternate(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("task")
	if taskID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_argument", "task query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}

	task, err := h.Directory.Task(r.Context(), taskID)
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	candidate, err := h.Leave.FindAlternate(r.Context(), chi.URLParam(r, "employeeID"), task)
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"taskId":    task.ID,
		"candidate": candidate,
		"found":     candidate != nil,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetIncident(w http.ResponseWriter, r *http.Request) {
	incident, err := h.Incidents.Get(r.Context(), chi.URLParam(r, "incidentID"))
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, incident, middleware.GetRequestID(r.Context()))
}

type resolveRequest struct {
	Notes string `json:"resolutionNotes"`
}

func (h *Handler) handleResolveIncident(w http.ResponseWriter, r *http.Request) {
	var payload resolveRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	incident, err := h.Incidents.Resolve(r.Context(), chi.URLParam(r, "incidentID"), payload.Notes)
	if err != nil {
		failFromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, incident, middleware.GetRequestID(r.Context()))
}
