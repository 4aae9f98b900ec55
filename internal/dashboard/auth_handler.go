package dashboard

import (
	"errors"
	"net/http"

	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/pkg"

	log "github.com/sirupsen/logrus"
)

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := h.states.Issue(r.Context())
	if err != nil {
		log.Errorf("strava login, issue state: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to start strava login")
		return
	}

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusFound)
}

// handleCallback finishes the authorization code flow: the state is verified, the code
// exchanged, the session saved and the athlete profile from the token response stored.
func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if authErr := query.Get("error"); authErr != "" {
		log.Warnf("strava callback, authorization denied: %s", authErr)
		pkg.WriteJSONError(w, http.StatusBadRequest, "strava authorization denied")
		return
	}

	valid, err := h.states.Consume(r.Context(), query.Get("state"))
	if err != nil || !valid {
		log.Warnf("strava callback, invalid state [%s]: %v", query.Get("state"), err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	code := query.Get("code")
	if code == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	stravaSession, athlete, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("strava callback, exchange code: %s", err)
		status := http.StatusBadGateway
		if errors.Is(err, strava.ErrAuthentication) {
			status = http.StatusUnauthorized
		}
		pkg.WriteJSONError(w, status, "strava code exchange failed")
		return
	}

	if err := h.sessions.Save(r.Context(), stravaSession); err != nil {
		log.Errorf("strava callback, save session: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to save strava session")
		return
	}

	if len(athlete) > 0 && stravaSession.AthleteID != 0 {
		if err := h.store.StoreProfile(r.Context(), stravaSession.AthleteID, athlete); err != nil {
			log.Errorf("strava callback, store initial profile for athlete %d: %s", stravaSession.AthleteID, err)
		}
	}

	h.recordsCache.Clear()
	log.Infof("strava connected for athlete %d", stravaSession.AthleteID)

	http.Redirect(w, r, h.dashboardURL, http.StatusFound)
}

func (h *Handler) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.sessions.Clear(r.Context()); err != nil {
		log.Errorf("strava disconnect, clear session: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to clear strava session")
		return
	}

	h.recordsCache.Clear()
	pkg.WriteJSON(w, http.StatusOK, map[string]bool{"disconnected": true})
}
