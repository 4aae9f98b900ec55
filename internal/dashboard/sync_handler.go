package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/internal/syncer"
	"github.com/2beens/trainerdash/pkg"

	log "github.com/sirupsen/logrus"
)

// syncTimeout bounds a sync started over http. The run is detached from the
// request so a closed browser tab does not abort it halfway.
const syncTimeout = 10 * time.Minute

type autoSyncResponse struct {
	Synced bool           `json:"synced"`
	Result *syncer.Result `json:"result,omitempty"`
}

func (h *Handler) handleFullSync(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var startDate *time.Time
	if since := r.URL.Query().Get("since"); since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid since, expected RFC3339 timestamp")
			return
		}
		startDate = &parsed
	}

	ctx, cancel := syncContext(r)
	defer cancel()

	result, err := h.syncer.SyncAll(ctx, logProgress, startDate)
	h.writeSyncResult(w, result, err)
}

func (h *Handler) handleQuickSync(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	stages, err := syncer.ParseStages(r.URL.Query().Get("types"))
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := syncContext(r)
	defer cancel()

	result, err := h.syncer.QuickSync(ctx, stages, logProgress)
	h.writeSyncResult(w, result, err)
}

func (h *Handler) handleAutoSync(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	maxAge := h.defaultMaxAge
	if raw := r.URL.Query().Get("maxAgeHours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 0 {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid maxAgeHours")
			return
		}
		maxAge = time.Duration(hours) * time.Hour
	}

	ctx, cancel := syncContext(r)
	defer cancel()

	result, err := h.AutoSync(ctx, maxAge)
	if err != nil {
		h.writeSyncResult(w, nil, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, autoSyncResponse{
		Synced: result != nil,
		Result: result,
	})
}

// AutoSync runs an auto sync and drops cached records when new data was pulled.
// Used by the http route and the background ticker.
func (h *Handler) AutoSync(ctx context.Context, maxAge time.Duration) (*syncer.Result, error) {
	result, err := h.syncer.AutoSync(ctx, logProgress, maxAge)
	if result != nil {
		h.recordsCache.Clear()
	}
	return result, err
}

func (h *Handler) writeSyncResult(w http.ResponseWriter, result *syncer.Result, err error) {
	if result != nil {
		h.recordsCache.Clear()
	}

	switch {
	case err == nil:
		pkg.WriteJSON(w, http.StatusOK, result)
	case errors.Is(err, syncer.ErrMissingSession),
		errors.Is(err, syncer.ErrMissingAthleteID),
		errors.Is(err, strava.ErrAuthentication):
		log.Warnf("sync rejected: %s", err)
		pkg.WriteJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, syncer.ErrSyncInProgress):
		pkg.WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, syncer.ErrUnknownStage):
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
	default:
		log.Errorf("sync failed: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "sync failed")
	}
}

func syncContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(r.Context()), syncTimeout)
}

func logProgress(message string) {
	log.Debugf("sync progress: %s", message)
}
