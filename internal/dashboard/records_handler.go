package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/trainerdash/internal/store"
	"github.com/2beens/trainerdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	recordsAll     = "all"
	recordsGeneral = "general"
	recordsRunning = "running"
	recordsCycling = "cycling"
)

// handleRecords serves computed records. Responses are cached per athlete and
// sync watermark, so a new full or auto sync always recomputes them.
func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	stravaSession, ok := sessionOrReject(w, r)
	if !ok {
		return
	}

	kind := mux.Vars(r)["kind"]
	if kind == "" {
		kind = recordsAll
	}
	switch kind {
	case recordsAll, recordsGeneral, recordsRunning, recordsCycling:
	default:
		pkg.WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown records kind: %s", kind))
		return
	}

	cacheKey, err := h.recordsCacheKey(r.Context(), kind, stravaSession.AthleteID)
	if err != nil {
		writeStoreError(w, "records", err)
		return
	}

	if cached, found := h.recordsCache.Get(cacheKey); found {
		log.Tracef("records [%s] for athlete %d served from cache", kind, stravaSession.AthleteID)
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	computed, err := h.computeRecords(r.Context(), kind, stravaSession.AthleteID)
	if err != nil {
		writeStoreError(w, "records", err)
		return
	}

	respBytes, err := json.Marshal(computed)
	if err != nil {
		log.Errorf("marshal %s records: %s", kind, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to marshal records")
		return
	}

	h.recordsCache.Set(cacheKey, respBytes)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) computeRecords(ctx context.Context, kind string, athleteID int64) (any, error) {
	switch kind {
	case recordsGeneral:
		return h.analyzer.General(ctx, athleteID)
	case recordsRunning:
		return h.analyzer.Running(ctx, athleteID)
	case recordsCycling:
		return h.analyzer.Cycling(ctx, athleteID)
	default:
		return h.analyzer.All(ctx, athleteID)
	}
}

func (h *Handler) recordsCacheKey(ctx context.Context, kind string, athleteID int64) (string, error) {
	var watermark int64
	status, err := h.store.GetSyncStatus(ctx, athleteID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return "", err
	case status != nil:
		watermark = status.LastSyncTime.UnixNano()
	}
	return fmt.Sprintf("records::%s::%d::%d", kind, athleteID, watermark), nil
}
