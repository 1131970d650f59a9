package compensationhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/compensation"
	"hrms/internal/domain/org"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service      *compensation.Service
	DefaultLimit int
	MaxLimit     int
}

func NewHandler(service *compensation.Service, defaultLimit, maxLimit int) *Handler {
	return &Handler{Service: service, DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salary-bands", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/out-of-band", h.handleOutOfBand)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

type bandRequest struct {
	PositionID  string          `json:"positionId"`
	CareerLevel org.CareerLevel `json:"careerLevel"`
	MinValue    float64         `json:"minValue"`
	MaxValue    float64         `json:"maxValue"`
}

func (p bandRequest) model() compensation.Band {
	return compensation.Band{
		PositionID:  p.PositionID,
		CareerLevel: p.CareerLevel,
		MinValue:    p.MinValue,
		MaxValue:    p.MaxValue,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	query, err := shared.ParseQuery(r, "positionId", "careerLevel", "current")
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	current, err := query.Bool("current")
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	filter := compensation.BandFilter{
		PositionID:  query.Get("positionId"),
		CareerLevel: org.CareerLevel(query.Get("careerLevel")),
		Current:     current,
	}

	page := shared.ParsePage(r, h.DefaultLimit, h.MaxLimit)
	items, total, err := h.Service.ListBands(r.Context(), actor, filter, page.Limit, page.Offset())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.SuccessPage(w, items, shared.NewPageMeta(page, total), reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	band, err := h.Service.GetBand(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, band, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload bandRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	band, err := h.Service.CreateBand(r.Context(), actor, payload.model())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Created(w, band, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload bandRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	band, err := h.Service.UpdateBand(r.Context(), actor, chi.URLParam(r, "id"), payload.model())
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, band, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	if err := h.Service.DeleteBand(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}

func (h *Handler) handleOutOfBand(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	findings, err := h.Service.FindOutOfBand(r.Context(), actor)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, findings, reqID)
}
