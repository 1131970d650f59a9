package dashboardhandler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/dashboard"
	"hrms/internal/export"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *dashboard.Service
}

func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Get("/stats", h.handleStats)
		r.Get("/distributions", h.handleDistributions)
		r.Get("/movements", h.handleMovementHistory)
		r.Get("/movements/export", h.handleMovementHistoryCSV)
		r.Get("/salary-analysis", h.handleSalaryAnalysis)
		r.Get("/salary-analysis/export", h.handleSalaryAnalysisPDF)
		r.Get("/budget", h.handleBudget)
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	stats, err := h.Service.Stats(r.Context(), actor)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleDistributions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	dist, err := h.Service.Distributions(r.Context(), actor)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, dist, reqID)
}

func (h *Handler) months(r *http.Request) (int, error) {
	query, err := shared.ParseQuery(r, "months")
	if err != nil {
		return 0, err
	}
	return query.Int("months", 12), nil
}

func (h *Handler) handleMovementHistory(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	months, err := h.months(r)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	history, err := h.Service.MovementHistory(r.Context(), actor, months)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, history, reqID)
}

func (h *Handler) handleMovementHistoryCSV(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	months, err := h.months(r)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	history, err := h.Service.MovementHistory(r.Context(), actor, months)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=movement-history-%s.csv", time.Now().Format("2006-01-02")))
	if err := export.MovementHistoryCSV(w, history); err != nil {
		api.WriteError(w, err, reqID)
	}
}

func (h *Handler) handleSalaryAnalysis(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	analysis, err := h.Service.SalaryAnalysis(r.Context(), actor)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, analysis, reqID)
}

func (h *Handler) handleSalaryAnalysisPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	analysis, err := h.Service.SalaryAnalysis(r.Context(), actor)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=salary-analysis-%s.pdf", time.Now().Format("2006-01-02")))
	if err := export.SalaryAnalysisPDF(w, analysis); err != nil {
		api.WriteError(w, err, reqID)
	}
}

func (h *Handler) handleBudget(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	rows, err := h.Service.BudgetComparison(r.Context(), actor)
	if err != nil {
		api.WriteError(w, err, reqID)
		return
	}
	api.Success(w, rows, reqID)
}
