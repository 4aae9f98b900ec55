//go:build integration_test || all_tests

package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/2beens/trainerdash/internal/strava"

	"github.com/gorilla/mux"
)

const (
	fakeClientID     = "test-client-id"
	fakeClientSecret = "test-client-secret"
	fakeAuthCode     = "good-code"
	fakeAthleteID    = int64(9001)
	fakePageSize     = 2
)

// fakeStrava serves the parts of the strava api the service talks to.
type fakeStrava struct {
	srv *httptest.Server

	mutex           sync.Mutex
	activities      []strava.Activity
	activityPages   []int
	refreshCalls    int
	lastAccessToken string
	tokenSeq        int
}

func newFakeStrava() *fakeStrava {
	f := &fakeStrava{}

	r := mux.NewRouter()
	r.HandleFunc("/oauth/token", f.handleToken).Methods("POST")
	r.HandleFunc("/athlete", f.handleAthlete).Methods("GET")
	r.HandleFunc("/athletes/{id}/stats", f.handleStats).Methods("GET")
	r.HandleFunc("/athlete/activities", f.handleActivities).Methods("GET")

	f.srv = httptest.NewServer(r)
	return f
}

func (f *fakeStrava) URL() string {
	return f.srv.URL
}

func (f *fakeStrava) Close() {
	f.srv.Close()
}

func (f *fakeStrava) Reset() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.activities = nil
	f.activityPages = nil
	f.refreshCalls = 0
	f.lastAccessToken = ""
}

func (f *fakeStrava) SetActivities(activities []strava.Activity) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.activities = activities
}

func (f *fakeStrava) ActivityPages() []int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]int(nil), f.activityPages...)
}

func (f *fakeStrava) RefreshCalls() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.refreshCalls
}

func (f *fakeStrava) LastAccessToken() string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.lastAccessToken
}

func (f *fakeStrava) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	clientID, clientSecret, ok := r.BasicAuth()
	if !ok {
		clientID, clientSecret = r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")
	}
	if clientID != fakeClientID || clientSecret != fakeClientSecret {
		writeFakeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Authorization Error"})
		return
	}

	f.mutex.Lock()
	f.tokenSeq++
	seq := f.tokenSeq
	f.mutex.Unlock()

	resp := map[string]any{
		"token_type":    "Bearer",
		"access_token":  fmt.Sprintf("access-%d", seq),
		"refresh_token": fmt.Sprintf("refresh-%d", seq),
		"expires_at":    time.Now().Add(6 * time.Hour).Unix(),
		"expires_in":    21600,
	}

	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		if r.PostForm.Get("code") != fakeAuthCode {
			writeFakeJSON(w, http.StatusBadRequest, map[string]any{"message": "Bad Request"})
			return
		}
		resp["athlete"] = fakeProfile()
	case "refresh_token":
		if r.PostForm.Get("refresh_token") == "" {
			writeFakeJSON(w, http.StatusBadRequest, map[string]any{"message": "Bad Request"})
			return
		}
		f.mutex.Lock()
		f.refreshCalls++
		f.mutex.Unlock()
	default:
		writeFakeJSON(w, http.StatusBadRequest, map[string]any{"message": "unsupported grant type"})
		return
	}

	writeFakeJSON(w, http.StatusOK, resp)
}

func (f *fakeStrava) authorized(w http.ResponseWriter, r *http.Request) bool {
	token := r.Header.Get("Authorization")
	if token == "" {
		writeFakeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Authorization Error"})
		return false
	}
	f.mutex.Lock()
	f.lastAccessToken = token
	f.mutex.Unlock()
	return true
}

func (f *fakeStrava) handleAthlete(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(w, r) {
		return
	}
	writeFakeJSON(w, http.StatusOK, fakeProfile())
}

func (f *fakeStrava) handleStats(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(w, r) {
		return
	}
	if mux.Vars(r)["id"] != strconv.FormatInt(fakeAthleteID, 10) {
		writeFakeJSON(w, http.StatusNotFound, map[string]any{"message": "Record Not Found"})
		return
	}
	writeFakeJSON(w, http.StatusOK, map[string]any{
		"biggest_ride_distance":        81000.0,
		"biggest_climb_elevation_gain": 640.0,
		"all_run_totals":               map[string]any{"count": 2, "distance": 15000.0, "moving_time": 4500},
		"all_ride_totals":              map[string]any{"count": 1, "distance": 81000.0, "moving_time": 10800},
	})
}

// handleActivities pages through all configured activities; the after filter is
// not applied, so incremental syncs see every activity again.
func (f *fakeStrava) handleActivities(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(w, r) {
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		writeFakeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid page"})
		return
	}
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil || perPage < 1 {
		writeFakeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid per_page"})
		return
	}

	f.mutex.Lock()
	f.activityPages = append(f.activityPages, page)
	start := (page - 1) * perPage
	end := start + perPage
	var batch []strava.Activity
	if start < len(f.activities) {
		batch = f.activities[start:min(end, len(f.activities))]
	}
	f.mutex.Unlock()

	if batch == nil {
		batch = []strava.Activity{}
	}
	writeFakeJSON(w, http.StatusOK, batch)
}

func fakeProfile() map[string]any {
	return map[string]any{
		"id":        fakeAthleteID,
		"firstname": "Mila",
		"lastname":  "Jovanovic",
		"city":      "Novi Sad",
		"country":   "Serbia",
	}
}

func fakeActivities() []strava.Activity {
	start := time.Now().Add(-72 * time.Hour).UTC().Truncate(time.Second)
	return []strava.Activity{
		{
			ID: 101, Name: "Morning 5k", Type: "Run", SportType: "Run",
			Distance: 5000, MovingTime: 1380, ElapsedTime: 1400, AverageSpeed: 3.62,
			TotalElevationGain: 20, StartDate: start,
		},
		{
			ID: 102, Name: "Long run", Type: "Run", SportType: "Run",
			Distance: 10000, MovingTime: 3000, ElapsedTime: 3100, AverageSpeed: 3.33,
			TotalElevationGain: 85, StartDate: start.Add(24 * time.Hour),
		},
		{
			ID: 103, Name: "Fruska Gora loop", Type: "Ride", SportType: "Ride",
			Distance: 81000, MovingTime: 10800, ElapsedTime: 11500, AverageSpeed: 7.5,
			TotalElevationGain: 640, StartDate: start.Add(48 * time.Hour),
		},
	}
}

func writeFakeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
