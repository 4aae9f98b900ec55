package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/trainerdash/internal/cache"
	"github.com/2beens/trainerdash/internal/middleware"
	"github.com/2beens/trainerdash/internal/records"
	"github.com/2beens/trainerdash/internal/store"
	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/internal/syncer"
	"github.com/2beens/trainerdash/pkg"

	"github.com/gorilla/mux"
)

//go:generate mockgen -source=$GOFILE -destination=dashboard_mocks_test.go -package=dashboard_test

type athleteStore interface {
	GetProfile(ctx context.Context, athleteID int64) (*store.ProfileDocument, error)
	GetStats(ctx context.Context, athleteID int64) (*store.StatsDocument, error)
	GetSyncStatus(ctx context.Context, athleteID int64) (*store.SyncStatusDocument, error)
	CountActivities(ctx context.Context, athleteID int64) (int, error)
	StoreProfile(ctx context.Context, athleteID int64, profile strava.Profile) error
}

type syncRunner interface {
	SyncAll(ctx context.Context, onProgress syncer.ProgressFunc, startDate *time.Time) (*syncer.Result, error)
	QuickSync(ctx context.Context, stages []syncer.Stage, onProgress syncer.ProgressFunc) (*syncer.Result, error)
	AutoSync(ctx context.Context, onProgress syncer.ProgressFunc, maxAge time.Duration) (*syncer.Result, error)
}

type recordsAnalyzer interface {
	General(ctx context.Context, athleteID int64) (records.GeneralRecords, error)
	Running(ctx context.Context, athleteID int64) (*records.RunningRecords, error)
	Cycling(ctx context.Context, athleteID int64) (*records.CyclingRecords, error)
	All(ctx context.Context, athleteID int64) (*records.Summary, error)
}

type oauthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*strava.Session, strava.Profile, error)
}

type stateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) (bool, error)
}

type sessionRepo interface {
	Save(ctx context.Context, session *strava.Session) error
	Clear(ctx context.Context) error
}

type Handler struct {
	store         athleteStore
	syncer        syncRunner
	analyzer      recordsAnalyzer
	oauth         oauthProvider
	states        stateStore
	sessions      sessionRepo
	recordsCache  cache.Cache
	dashboardURL  string
	defaultMaxAge time.Duration
	versionInfo   string
}

type HandlerParams struct {
	Store         athleteStore
	Syncer        syncRunner
	Analyzer      recordsAnalyzer
	OAuth         oauthProvider
	States        stateStore
	Sessions      sessionRepo
	RecordsCache  cache.Cache
	DashboardURL  string
	DefaultMaxAge time.Duration
	VersionInfo   string
}

func NewHandler(params HandlerParams) *Handler {
	recordsCache := params.RecordsCache
	if recordsCache == nil {
		recordsCache = cache.NewTestCache()
	}
	dashboardURL := params.DashboardURL
	if dashboardURL == "" {
		dashboardURL = "/"
	}

	return &Handler{
		store:         params.Store,
		syncer:        params.Syncer,
		analyzer:      params.Analyzer,
		oauth:         params.OAuth,
		states:        params.States,
		sessions:      params.Sessions,
		recordsCache:  recordsCache,
		dashboardURL:  dashboardURL,
		defaultMaxAge: params.DefaultMaxAge,
		versionInfo:   params.VersionInfo,
	}
}

// SetupRoutes registers the oauth, athlete and records routes. Sync routes are
// registered separately so they can get their own rate limited router.
func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/", h.handleRoot).Methods("GET").Name("root")
	router.HandleFunc("/health", h.handleHealth).Methods("GET").Name("health")
	router.HandleFunc("/version", h.handleVersion).Methods("GET").Name("version")

	router.HandleFunc("/auth/strava/login", h.handleLogin).Methods("GET").Name("strava-login")
	router.HandleFunc("/auth/strava/callback", h.handleCallback).Methods("GET").Name("strava-callback")
	router.HandleFunc("/auth/strava/session", h.handleDisconnect).Methods("DELETE", "OPTIONS").Name("strava-disconnect")

	router.HandleFunc("/athlete/profile", h.handleProfile).Methods("GET").Name("athlete-profile")
	router.HandleFunc("/athlete/stats", h.handleStats).Methods("GET").Name("athlete-stats")

	router.HandleFunc("/records", h.handleRecords).Methods("GET").Name("records-all")
	router.HandleFunc("/records/{kind}", h.handleRecords).Methods("GET").Name("records-kind")
}

func (h *Handler) SetupSyncRoutes(router *mux.Router) {
	router.HandleFunc("/sync", h.handleFullSync).Methods("POST", "OPTIONS").Name("sync-full")
	router.HandleFunc("/sync/quick", h.handleQuickSync).Methods("POST", "OPTIONS").Name("sync-quick")
	router.HandleFunc("/sync/auto", h.handleAutoSync).Methods("POST", "OPTIONS").Name("sync-auto")
	router.HandleFunc("/sync/status", h.handleSyncStatus).Methods("GET").Name("sync-status")
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "trainerdash")
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, h.versionInfo)
}

// sessionOrReject returns the session put in the request context by the auth middleware.
func sessionOrReject(w http.ResponseWriter, r *http.Request) (*strava.Session, bool) {
	s, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "not connected to strava")
		return nil, false
	}
	return s, true
}
