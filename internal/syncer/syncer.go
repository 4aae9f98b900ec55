package syncer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/2beens/trainerdash/internal/session"
	"github.com/2beens/trainerdash/internal/store"
	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/internal/telemetry/metrics"
	"github.com/2beens/trainerdash/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=syncer_mocks_test.go -package=syncer_test

const (
	// quickSyncOverlap is subtracted from the last sync time so activities
	// uploaded late are still picked up by incremental syncs.
	quickSyncOverlap = 24 * time.Hour
)

var (
	ErrMissingSession   = errors.New("missing strava session")
	ErrMissingAthleteID = errors.New("missing athlete id")
	ErrSyncInProgress   = errors.New("sync already in progress")
)

type stravaAPI interface {
	GetAthlete(ctx context.Context, accessToken string) (strava.Profile, error)
	GetAthleteStats(ctx context.Context, accessToken string, athleteID int64) (*strava.AthleteStats, error)
	FetchActivitiesSince(ctx context.Context, accessToken string, after time.Time) ([]strava.Activity, error)
}

type tokenRefresher interface {
	EnsureFresh(ctx context.Context, session *strava.Session) (*strava.Session, bool, error)
}

type documentStore interface {
	StoreProfile(ctx context.Context, athleteID int64, profile strava.Profile) error
	StoreStats(ctx context.Context, athleteID int64, stats *strava.AthleteStats) error
	StoreActivities(ctx context.Context, athleteID int64, activities []strava.Activity) (int, error)
	StoreSyncStatus(ctx context.Context, athleteID int64, status store.SyncStatusDocument) error
	GetSyncStatus(ctx context.Context, athleteID int64) (*store.SyncStatusDocument, error)
}

// ProgressFunc receives human readable stage descriptions, in stage order.
type ProgressFunc func(message string)

type Orchestrator struct {
	api            stravaAPI
	tokens         tokenRefresher
	sessions       session.Repository
	store          documentStore
	metricsManager *metrics.Manager

	// one sync at a time per orchestrator
	running sync.Mutex

	Now      func() time.Time
	NewRunID func() string
}

func NewOrchestrator(
	api stravaAPI,
	tokens tokenRefresher,
	sessions session.Repository,
	store documentStore,
	metricsManager *metrics.Manager,
) *Orchestrator {
	return &Orchestrator{
		api:            api,
		tokens:         tokens,
		sessions:       sessions,
		store:          store,
		metricsManager: metricsManager,
		Now:            time.Now,
		NewRunID:       func() string { return uuid.NewString() },
	}
}

// SyncAll runs profile, stats and activities stages and writes the sync status.
// Activities are fetched since startDate, or for the last 3 months when nil.
// Stage failures are collected in the result; only precondition and token
// failures are returned as errors.
func (o *Orchestrator) SyncAll(ctx context.Context, onProgress ProgressFunc, startDate *time.Time) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.syncAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !o.running.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer o.running.Unlock()

	return o.syncAll(ctx, ModeFull, onProgress, startDate)
}

// QuickSync runs only the requested stages and leaves the sync status untouched.
// Activities are fetched incrementally since the last successful activities sync.
func (o *Orchestrator) QuickSync(ctx context.Context, stages []Stage, onProgress ProgressFunc) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.quickSync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(stages) == 0 {
		stages = AllStages
	}
	for _, stage := range stages {
		if _, ok := stageLabels[stage]; !ok || stage == StageSyncStatus {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
		}
	}
	stages = orderStages(stages)

	if !o.running.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer o.running.Unlock()

	run, sess, err := o.begin(ctx, ModeQuick, onProgress)
	if err != nil {
		return nil, err
	}

	var after time.Time
	if slices.Contains(stages, StageActivities) {
		after = o.activitiesWatermark(ctx, run)
	}

	o.runStages(ctx, run, sess, stages, after)

	return o.finish(run), nil
}

// AutoSync triggers a full sync when the last sync is older than maxAge or missing.
// It returns a nil result when the stored data is fresh enough.
func (o *Orchestrator) AutoSync(ctx context.Context, onProgress ProgressFunc, maxAge time.Duration) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.autoSync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sess, err := o.loadSession(ctx)
	if err != nil {
		return nil, err
	}

	needsSync, err := o.NeedsSync(ctx, sess.AthleteID, maxAge)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Bool("sync.needed", needsSync))
	if !needsSync {
		log.Debugf("auto sync: athlete %d synced within %s, skipping", sess.AthleteID, maxAge)
		return nil, nil
	}

	if !o.running.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer o.running.Unlock()

	return o.syncAll(ctx, ModeAuto, onProgress, nil)
}

// NeedsSync reports whether the athlete has never been synced, or the last
// sync happened more than maxAge ago.
func (o *Orchestrator) NeedsSync(ctx context.Context, athleteID int64, maxAge time.Duration) (bool, error) {
	status, err := o.store.GetSyncStatus(ctx, athleteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("get sync status: %w", err)
	}
	if status == nil || status.LastSyncTime.IsZero() {
		return true, nil
	}
	return o.Now().Sub(status.LastSyncTime) > maxAge, nil
}

func (o *Orchestrator) syncAll(ctx context.Context, mode Mode, onProgress ProgressFunc, startDate *time.Time) (*Result, error) {
	run, sess, err := o.begin(ctx, mode, onProgress)
	if err != nil {
		return nil, err
	}

	after := run.result.StartedAt.AddDate(0, -3, 0)
	if startDate != nil {
		after = *startDate
	}

	o.runStages(ctx, run, sess, AllStages, after)
	o.writeSyncStatus(ctx, run)

	return o.finish(run), nil
}

type syncRun struct {
	result     *Result
	logger     *log.Entry
	onProgress ProgressFunc
}

func (r *syncRun) progress(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	r.result.Progress = append(r.result.Progress, message)
	r.logger.Debug(message)
	if r.onProgress != nil {
		r.onProgress(message)
	}
}

// begin checks preconditions and makes sure the access token is fresh.
func (o *Orchestrator) begin(ctx context.Context, mode Mode, onProgress ProgressFunc) (*syncRun, *strava.Session, error) {
	sess, err := o.loadSession(ctx)
	if err != nil {
		o.metricsManager.CounterSyncRuns.WithLabelValues(string(mode), "rejected").Inc()
		return nil, nil, err
	}

	runID := o.NewRunID()
	run := &syncRun{
		result: &Result{
			RunID:     runID,
			Mode:      mode,
			AthleteID: sess.AthleteID,
			Errors:    []string{},
			StartedAt: o.Now(),
		},
		logger: log.WithFields(log.Fields{
			"run_id":     runID,
			"athlete_id": sess.AthleteID,
			"mode":       mode,
		}),
		onProgress: onProgress,
	}
	run.logger.Info("sync started")

	run.progress("Checking access token...")
	fresh, refreshed, err := o.tokens.EnsureFresh(ctx, sess)
	if err != nil {
		run.logger.Errorf("refresh access token: %s", err)
		o.metricsManager.CounterSyncRuns.WithLabelValues(string(mode), "failed").Inc()
		return nil, nil, fmt.Errorf("refresh access token: %w", err)
	}
	if refreshed {
		o.metricsManager.CounterTokenRefreshes.Inc()
		run.progress("Access token refreshed")
		if err := o.sessions.Save(ctx, fresh); err != nil {
			// the fresh token is still usable for this run
			run.logger.Errorf("save refreshed session: %s", err)
		}
	}

	return run, fresh, nil
}

func (o *Orchestrator) loadSession(ctx context.Context) (*strava.Session, error) {
	sess, err := o.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, ErrMissingSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil || (sess.AccessToken == "" && sess.RefreshToken == "") {
		return nil, ErrMissingSession
	}
	if sess.AthleteID == 0 {
		return nil, ErrMissingAthleteID
	}
	return sess, nil
}

func (o *Orchestrator) runStages(ctx context.Context, run *syncRun, sess *strava.Session, stages []Stage, after time.Time) {
	for _, stage := range stages {
		var (
			count int
			err   error
		)

		switch stage {
		case StageProfile:
			run.progress("Syncing athlete profile...")
			err = o.syncProfile(ctx, sess)
		case StageStats:
			run.progress("Syncing athlete stats...")
			err = o.syncStats(ctx, sess)
		case StageActivities:
			run.progress("Fetching activities since %s...", after.UTC().Format(time.DateOnly))
			count, err = o.syncActivities(ctx, run, sess, after)
		}

		if err != nil {
			run.logger.Errorf("%s: %s", stageLabels[stage], err)
			o.metricsManager.CounterSyncStageFailures.WithLabelValues(string(stage)).Inc()
			run.result.recordFailure(stage, count, err)
			continue
		}
		run.result.recordSuccess(stage, count)
	}
}

func (o *Orchestrator) syncProfile(ctx context.Context, sess *strava.Session) error {
	profile, err := o.api.GetAthlete(ctx, sess.AccessToken)
	if err != nil {
		return err
	}
	return o.store.StoreProfile(ctx, sess.AthleteID, profile)
}

func (o *Orchestrator) syncStats(ctx context.Context, sess *strava.Session) error {
	stats, err := o.api.GetAthleteStats(ctx, sess.AccessToken, sess.AthleteID)
	if err != nil {
		return err
	}
	return o.store.StoreStats(ctx, sess.AthleteID, stats)
}

func (o *Orchestrator) syncActivities(ctx context.Context, run *syncRun, sess *strava.Session, after time.Time) (int, error) {
	activities, err := o.api.FetchActivitiesSince(ctx, sess.AccessToken, after)
	if err != nil {
		return 0, err
	}
	run.progress("Fetched %d activities, storing...", len(activities))

	stored, err := o.store.StoreActivities(ctx, sess.AthleteID, activities)
	o.metricsManager.CounterStoredActivities.Add(float64(stored))
	if err != nil {
		return stored, err
	}
	run.progress("Stored %d activities", stored)

	return stored, nil
}

func (o *Orchestrator) writeSyncStatus(ctx context.Context, run *syncRun) {
	run.progress("Writing sync status...")
	status := store.SyncStatusDocument{
		RunID:        run.result.RunID,
		LastSyncTime: o.Now(),
		Success:      len(run.result.Errors) == 0,
		Errors:       append([]string{}, run.result.Errors...),
		Results:      run.result.stageStatuses(),
	}
	if err := o.store.StoreSyncStatus(ctx, run.result.AthleteID, status); err != nil {
		run.logger.Errorf("write sync status: %s", err)
		o.metricsManager.CounterSyncStageFailures.WithLabelValues(string(StageSyncStatus)).Inc()
		run.result.recordFailure(StageSyncStatus, 0, err)
		return
	}
	run.result.recordSuccess(StageSyncStatus, 0)
}

// activitiesWatermark returns the instant incremental activity fetching starts from.
func (o *Orchestrator) activitiesWatermark(ctx context.Context, run *syncRun) time.Time {
	fallback := run.result.StartedAt.AddDate(0, -3, 0)

	status, err := o.store.GetSyncStatus(ctx, run.result.AthleteID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			run.logger.Warnf("get sync status for watermark: %s", err)
		}
		return fallback
	}
	if status.LastSyncTime.IsZero() {
		return fallback
	}
	if activitiesStatus, ok := status.Results[string(StageActivities)]; ok && !activitiesStatus.Success {
		return fallback
	}

	return status.LastSyncTime.Add(-quickSyncOverlap)
}

func (o *Orchestrator) finish(run *syncRun) *Result {
	result := run.result
	result.Success = len(result.Errors) == 0
	result.FinishedAt = o.Now()

	outcome := "success"
	if result.Success {
		run.progress("Sync complete")
	} else {
		outcome = "partial"
		run.progress("Sync finished with %d error(s)", len(result.Errors))
	}

	o.metricsManager.CounterSyncRuns.WithLabelValues(string(result.Mode), outcome).Inc()
	o.metricsManager.HistSyncDuration.Observe(result.FinishedAt.Sub(result.StartedAt).Seconds())
	run.logger.WithField("success", result.Success).Infof("sync finished in %s", result.FinishedAt.Sub(result.StartedAt))

	return result
}
