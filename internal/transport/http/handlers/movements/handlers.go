package movementhandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/movement"
	"hrms/internal/export"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service      *movement.Service
	DefaultLimit int
	MaxLimit     int
}

func NewHandler(service *movement.Service, defaultLimit, maxLimit int) *Handler {
	return &Handler{Service: service, DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/movements", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/export", h.handleExport)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Post("/{id}/approve", h.handleApprove)
		r.Post("/{id}/reject", h.handleReject)
		r.Delete("/{id}", h.handleDelete)
	})
}

type movementRequest struct {
	EmployeeID      string            `json:"employeeId"`
	Type            movement.Type     `json:"type"`
	NewDepartmentID *string           `json:"newDepartmentId"`
	NewPositionID   *string           `json:"newPositionId"`
	NewSalary       *float64          `json:"newSalary"`
	WorkSchedule    string            `json:"workSchedule"`
	WorkMode        employee.WorkMode `json:"workMode"`
	Justification   string            `json:"justification"`
	Notes           string            `json:"notes"`
	EffectiveDate   string            `json:"effectiveDate"`
}

func (p movementRequest) model() (movement.Movement, error) {
	m := movement.Movement{
		EmployeeID:      p.EmployeeID,
		Type:            p.Type,
		NewDepartmentID: p.NewDepartmentID,
		NewPositionID:   p.NewPositionID,
		NewSalary:       p.NewSalary,
		WorkSchedule:    p.WorkSchedule,
		WorkMode:        p.WorkMode,
		Justification:   p.Justification,
		Notes:           p.Notes,
	}
	if p.EffectiveDate != "" {
		parsed, err := shared.ParseDate(p.EffectiveDate)
		if err != nil {
			return movement.Movement{}, apperror.Validation("effectiveDate", "must be a valid date in YYYY-MM-DD format")
		}
		m.EffectiveDate = parsed
	}
	return m, nil
}

func parseFilter(r *http.Request) (movement.Filter, error) {
	query, err := shared.ParseQuery(r, "employeeId", "type", "status", "from", "to")
	if err != nil {
		return movement.Filter{}, err
	}
	from, err := query.Date("from")
	if err != nil {
		return movement.Filter{}, err
	}
	to, err := query.Date("to")
	if err != nil {
		return movement.Filter{}, err
	}
	return movement.Filter{
		EmployeeID: query.Get("employeeId"),
		Type:       movement.Type(query.Get("type")),
		Status:     movement.Status(query.Get("status")),
		From:       from,
		To:         to,
	}, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	filter, err := parseFilter(r)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}

	page := shared.ParsePage(r, h.DefaultLimit, h.MaxLimit)
	items, total, err := h.Service.List(r.Context(), actor, filter, page.Limit, page.Offset())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.SuccessPage(w, items, shared.NewPageMeta(page, total), reqID)
}

// exportLimit caps a CSV export at one page large enough for offline
// review without streaming the whole table unbounded.
const exportLimit = 10000

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	filter, err := parseFilter(r)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	items, _, err := h.Service.List(r.Context(), actor, filter, exportLimit, 0)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=movements-%s.csv", time.Now().Format("2006-01-02")))
	if err := export.MovementsCSV(w, items); err != nil {
		api.WriteError(w, err, reqID)
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	det, err := h.Service.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, det, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload movementRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	model, err := payload.model()
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	det, err := h.Service.Create(r.Context(), actor, model)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Created(w, det, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload movementRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	model, err := payload.model()
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	det, err := h.Service.Update(r.Context(), actor, chi.URLParam(r, "id"), model)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, det, reqID)
}

type approveRequest struct {
	WorkSchedule string            `json:"workSchedule"`
	WorkMode     employee.WorkMode `json:"workMode"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload approveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
			return
		}
	}
	det, err := h.Service.Approve(r.Context(), actor, chi.URLParam(r, "id"), movement.ApprovalInput{
		WorkSchedule: payload.WorkSchedule,
		WorkMode:     payload.WorkMode,
	})
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, det, reqID)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	det, err := h.Service.Reject(r.Context(), actor, chi.URLParam(r, "id"), payload.Reason)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, det, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	if err := h.Service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}
