package orghandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/org"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service      *org.Service
	DefaultLimit int
	MaxLimit     int
}

func NewHandler(service *org.Service, defaultLimit, maxLimit int) *Handler {
	return &Handler{Service: service, DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor)

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", h.handleListDepartments)
			r.Post("/", h.handleCreateDepartment)
			r.Get("/{id}", h.handleGetDepartment)
			r.Put("/{id}", h.handleUpdateDepartment)
			r.Delete("/{id}", h.handleDeleteDepartment)
		})

		r.Route("/positions", func(r chi.Router) {
			r.Get("/", h.handleListPositions)
			r.Post("/", h.handleCreatePosition)
			r.Get("/{id}", h.handleGetPosition)
			r.Put("/{id}", h.handleUpdatePosition)
			r.Delete("/{id}", h.handleDeletePosition)
		})
	})
}

type departmentRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CostCenter  string     `json:"costCenter"`
	ManagerID   string     `json:"managerId"`
	Budget      org.Budget `json:"budget"`
	Active      *bool      `json:"active"`
}

func (p departmentRequest) model() org.Department {
	d := org.Department{
		Name:        p.Name,
		Description: p.Description,
		CostCenter:  p.CostCenter,
		ManagerID:   p.ManagerID,
		Budget:      p.Budget,
		Active:      true,
	}
	if p.Active != nil {
		d.Active = *p.Active
	}
	return d
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	query, err := shared.ParseQuery(r, "active")
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	active, err := query.Bool("active")
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}

	page := shared.ParsePage(r, h.DefaultLimit, h.MaxLimit)
	items, total, err := h.Service.ListDepartments(r.Context(), actor, org.DepartmentFilter{Active: active}, page.Limit, page.Offset())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.SuccessPage(w, items, shared.NewPageMeta(page, total), reqID)
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	dep, err := h.Service.GetDepartment(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, dep, reqID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	dep, err := h.Service.CreateDepartment(r.Context(), actor, payload.model())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Created(w, dep, reqID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	dep, err := h.Service.UpdateDepartment(r.Context(), actor, chi.URLParam(r, "id"), payload.model())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, dep, reqID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	if err := h.Service.DeleteDepartment(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}

type positionRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	DepartmentID string          `json:"departmentId"`
	SalaryRange  org.SalaryRange `json:"salaryRange"`
	CareerLevel  org.CareerLevel `json:"careerLevel"`
	Active       *bool           `json:"active"`
}

func (p positionRequest) model() org.Position {
	pos := org.Position{
		Title:        p.Title,
		Description:  p.Description,
		DepartmentID: p.DepartmentID,
		SalaryRange:  p.SalaryRange,
		CareerLevel:  p.CareerLevel,
		Active:       true,
	}
	if p.Active != nil {
		pos.Active = *p.Active
	}
	return pos
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	query, err := shared.ParseQuery(r, "departmentId", "careerLevel", "active")
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	active, err := query.Bool("active")
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	filter := org.PositionFilter{
		DepartmentID: query.Get("departmentId"),
		CareerLevel:  org.CareerLevel(query.Get("careerLevel")),
		Active:       active,
	}

	page := shared.ParsePage(r, h.DefaultLimit, h.MaxLimit)
	items, total, err := h.Service.ListPositions(r.Context(), actor, filter, page.Limit, page.Offset())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.SuccessPage(w, items, shared.NewPageMeta(page, total), reqID)
}

func (h *Handler) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	pos, err := h.Service.GetPosition(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, pos, reqID)
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload positionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	pos, err := h.Service.CreatePosition(r.Context(), actor, payload.model())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Created(w, pos, reqID)
}

func (h *Handler) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload positionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	pos, err := h.Service.UpdatePosition(r.Context(), actor, chi.URLParam(r, "id"), payload.model())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, pos, reqID)
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	if err := h.Service.DeletePosition(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}
