package dashboard

import (
	"errors"
	"net/http"

	"github.com/2beens/fitscore/internal/middleware"
	"github.com/2beens/fitscore/internal/profiles"
	"github.com/2beens/fitscore/internal/telemetry/tracing"
	"github.com/2beens/fitscore/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 500
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard/{id}", h.HandleDashboard).Methods("GET", "OPTIONS").Name("get-dashboard")
	router.HandleFunc("/dashboard/{id}/history", h.HandleHistory).Methods("GET", "OPTIONS").Name("get-dashboard-history")
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.get")
	defer span.End()

	userID := mux.Vars(r)["id"]
	if !middleware.IsSessionUser(r, userID) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	state, err := h.service.Dashboard(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("get dashboard for %s: %s", userID, err)
		http.Error(w, "failed to compute dashboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, state, http.StatusOK)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.history")
	defer span.End()

	userID := mux.Vars(r)["id"]
	if !middleware.IsSessionUser(r, userID) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	limit, err := pkg.QueryLimit(r, defaultHistoryLimit, maxHistoryLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshots, err := h.service.History(ctx, userID, limit)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("get dashboard history for %s: %s", userID, err)
		http.Error(w, "failed to get history", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, snapshots, http.StatusOK)
}
