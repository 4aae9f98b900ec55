package dashboard

import (
	"errors"
	"net/http"

	"github.com/2beens/trainerdash/internal/store"
	"github.com/2beens/trainerdash/pkg"

	log "github.com/sirupsen/logrus"
)

type profileResponse struct {
	*store.ProfileDocument
	ActivitiesCount int `json:"activitiesCount"`
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	stravaSession, ok := sessionOrReject(w, r)
	if !ok {
		return
	}

	profile, err := h.store.GetProfile(r.Context(), stravaSession.AthleteID)
	if err != nil {
		writeStoreError(w, "athlete profile", err)
		return
	}

	count, err := h.store.CountActivities(r.Context(), stravaSession.AthleteID)
	if err != nil {
		log.Errorf("count activities for athlete %d: %s", stravaSession.AthleteID, err)
	}

	pkg.WriteJSON(w, http.StatusOK, profileResponse{
		ProfileDocument: profile,
		ActivitiesCount: count,
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stravaSession, ok := sessionOrReject(w, r)
	if !ok {
		return
	}

	stats, err := h.store.GetStats(r.Context(), stravaSession.AthleteID)
	if err != nil {
		writeStoreError(w, "athlete stats", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	stravaSession, ok := sessionOrReject(w, r)
	if !ok {
		return
	}

	status, err := h.store.GetSyncStatus(r.Context(), stravaSession.AthleteID)
	if err != nil {
		writeStoreError(w, "sync status", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, status)
}

func writeStoreError(w http.ResponseWriter, what string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, what+" not synced yet")
	case errors.Is(err, store.ErrStoreUnavailable):
		log.Errorf("get %s: %s", what, err)
		pkg.WriteJSONError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		log.Errorf("get %s: %s", what, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to get "+what)
	}
}
