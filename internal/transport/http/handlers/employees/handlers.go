package employeehandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/apperror"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/org"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service      *employee.Service
	DefaultLimit int
	MaxLimit     int
}

func NewHandler(service *employee.Service, defaultLimit, maxLimit int) *Handler {
	return &Handler{Service: service, DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

type employeeRequest struct {
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	NationalID      string            `json:"nationalId"`
	Phone           string            `json:"phone"`
	BirthDate       string            `json:"birthDate"`
	DepartmentID    string            `json:"departmentId"`
	PositionID      string            `json:"positionId"`
	ManagerID       string            `json:"managerId"`
	Status          employee.Status   `json:"status"`
	HiredAt         string            `json:"hiredAt"`
	Salary          float64           `json:"salary"`
	Workload        int               `json:"workload"`
	WorkSchedule    string            `json:"workSchedule"`
	WorkMode        employee.WorkMode `json:"workMode"`
	CareerLevel     org.CareerLevel   `json:"careerLevel"`
	EvaluationScore float64           `json:"evaluationScore"`
}

func (p employeeRequest) model() (employee.Employee, error) {
	e := employee.Employee{
		Name:            p.Name,
		Email:           p.Email,
		NationalID:      p.NationalID,
		Phone:           p.Phone,
		DepartmentID:    p.DepartmentID,
		PositionID:      p.PositionID,
		ManagerID:       p.ManagerID,
		Status:          p.Status,
		Salary:          p.Salary,
		Workload:        p.Workload,
		WorkSchedule:    p.WorkSchedule,
		WorkMode:        p.WorkMode,
		CareerLevel:     p.CareerLevel,
		EvaluationScore: p.EvaluationScore,
	}
	parse := func(field, raw string) (*time.Time, error) {
		if raw == "" {
			return nil, nil
		}
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			return nil, apperror.Validation(field, "must be a valid date in YYYY-MM-DD format")
		}
		return &parsed, nil
	}
	var err error
	if e.BirthDate, err = parse("birthDate", p.BirthDate); err != nil {
		return employee.Employee{}, err
	}
	if e.HiredAt, err = parse("hiredAt", p.HiredAt); err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	query, err := shared.ParseQuery(r, "departmentId", "positionId", "status", "workMode", "careerLevel", "search")
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	filter := employee.Filter{
		DepartmentID: query.Get("departmentId"),
		PositionID:   query.Get("positionId"),
		Status:       employee.Status(query.Get("status")),
		WorkMode:     employee.WorkMode(query.Get("workMode")),
		CareerLevel:  org.CareerLevel(query.Get("careerLevel")),
		Search:       query.Get("search"),
	}

	page := shared.ParsePage(r, h.DefaultLimit, h.MaxLimit)
	items, total, err := h.Service.List(r.Context(), actor, filter, page.Limit, page.Offset())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.SuccessPage(w, items, shared.NewPageMeta(page, total), reqID)
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

	var payload employeeRequest
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

	var payload employeeRequest
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

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	if err := h.Service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}
