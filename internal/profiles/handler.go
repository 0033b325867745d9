package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/fitscore/internal/analytics"
	"github.com/2beens/fitscore/internal/middleware"
	"github.com/2beens/fitscore/internal/telemetry/tracing"
	"github.com/2beens/fitscore/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	defaultLogsLimit = 30
	maxLogsLimit     = 365
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=profiles_test

type profilesRepo interface {
	GetProfile(ctx context.Context, userID string) (*analytics.UserProfile, error)
	UpsertProfile(ctx context.Context, profile analytics.UserProfile) error
	DeleteProfile(ctx context.Context, userID string) error
	UpsertDailyLog(ctx context.Context, userID string, dailyLog analytics.DailyLog) error
	ListDailyLogs(ctx context.Context, userID string, limit int) ([]analytics.DailyLog, error)
	DeleteDailyLog(ctx context.Context, userID string, day time.Time) error
}

type Handler struct {
	repo profilesRepo
}

func NewHandler(repo profilesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/profiles/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	router.HandleFunc("/profiles/{id}", h.HandleUpsert).Methods("PUT", "OPTIONS").Name("upsert-profile")
	router.HandleFunc("/profiles/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-profile")
	router.HandleFunc("/profiles/{id}/logs", h.HandleAddDailyLog).Methods("POST", "OPTIONS").Name("add-daily-log")
	router.HandleFunc("/profiles/{id}/logs", h.HandleListDailyLogs).Methods("GET", "OPTIONS").Name("list-daily-logs")
	router.HandleFunc("/profiles/{id}/logs/{day}", h.HandleDeleteDailyLog).Methods("DELETE", "OPTIONS").Name("delete-daily-log")
}

// authorizedUserID returns the {id} route var when it belongs to the session user,
// otherwise it writes the error response and returns false.
func authorizedUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := mux.Vars(r)["id"]
	if userID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return "", false
	}
	if !middleware.IsSessionUser(r, userID) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return userID, true
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.get")
	defer span.End()

	userID, ok := authorizedUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("get profile %s: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.upsert")
	defer span.End()

	userID, ok := authorizedUserID(w, r)
	if !ok {
		return
	}

	var profile analytics.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Errorf("upsert profile, unmarshal json: %s", err)
		http.Error(w, "invalid profile", http.StatusBadRequest)
		return
	}
	if profile.ID != "" && profile.ID != userID {
		http.Error(w, "profile id mismatch", http.StatusBadRequest)
		return
	}
	profile.ID = userID
	if err := profile.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.repo.UpsertProfile(ctx, profile); err != nil {
		log.Errorf("upsert profile %s: %s", userID, err)
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		return
	}

	log.Debugf("profile upserted: %s", userID)
	pkg.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.delete")
	defer span.End()

	userID, ok := authorizedUserID(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteProfile(ctx, userID); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete profile %s: %s", userID, err)
		http.Error(w, "failed to delete profile", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleAddDailyLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.logs.add")
	defer span.End()

	userID, ok := authorizedUserID(w, r)
	if !ok {
		return
	}

	var dailyLog analytics.DailyLog
	if err := json.NewDecoder(r.Body).Decode(&dailyLog); err != nil {
		log.Errorf("add daily log, unmarshal json: %s", err)
		http.Error(w, "invalid daily log", http.StatusBadRequest)
		return
	}
	if dailyLog.Date.IsZero() {
		http.Error(w, "daily log date missing", http.StatusBadRequest)
		return
	}
	if err := dailyLog.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dailyLog.Date = truncateToDay(dailyLog.Date)

	if err := h.repo.UpsertDailyLog(ctx, userID, dailyLog); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("add daily log for %s: %s", userID, err)
		http.Error(w, "failed to save daily log", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, dailyLog, http.StatusCreated)
}

func (h *Handler) HandleListDailyLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.logs.list")
	defer span.End()

	userID, ok := authorizedUserID(w, r)
	if !ok {
		return
	}

	limit, err := pkg.QueryLimit(r, defaultLogsLimit, maxLogsLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logs, err := h.repo.ListDailyLogs(ctx, userID, limit)
	if err != nil {
		log.Errorf("list daily logs for %s: %s", userID, err)
		http.Error(w, "failed to list daily logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, logs, http.StatusOK)
}

func (h *Handler) HandleDeleteDailyLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.logs.delete")
	defer span.End()

	userID, ok := authorizedUserID(w, r)
	if !ok {
		return
	}

	day, err := time.Parse(dayLayout, mux.Vars(r)["day"])
	if err != nil {
		http.Error(w, "invalid day, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteDailyLog(ctx, userID, day); err != nil {
		if errors.Is(err, ErrDailyLogNotFound) {
			http.Error(w, "daily log not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete daily log %s of %s: %s", day.Format(dayLayout), userID, err)
		http.Error(w, "failed to delete daily log", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
