package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Store keeps one athlete document (profile, stats, syncStatus) plus one
// activity document per activity. All writes are merge-upserts.
type Store struct {
	db  *pgxpool.Pool
	Now func() time.Time
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		db:  db,
		Now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) StoreProfile(ctx context.Context, athleteID int64, profile strava.Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.storeProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("athlete.id", athleteID))

	now := s.Now()
	return s.upsertSection(ctx, athleteID, sectionProfile, ProfileDocument{
		SchemaVersion: SchemaVersion,
		Attributes:    profile,
		StoredAt:      now,
		UpdatedAt:     now,
	})
}

func (s *Store) GetProfile(ctx context.Context, athleteID int64) (_ *ProfileDocument, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.getProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("athlete.id", athleteID))

	var doc ProfileDocument
	if err := s.getSection(ctx, athleteID, sectionProfile, &doc); err != nil {
		return nil, err
	}
	if doc.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: profile v%d", ErrUnsupportedSchema, doc.SchemaVersion)
	}
	return &doc, nil
}

func (s *Store) StoreStats(ctx context.Context, athleteID int64, stats *strava.AthleteStats) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.storeStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("athlete.id", athleteID))

	return s.upsertSection(ctx, athleteID, sectionStats, NewStatsDocument(stats, s.Now()))
}

func (s *Store) GetStats(ctx context.Context, athleteID int64) (_ *StatsDocument, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.getStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("athlete.id", athleteID))

	var doc StatsDocument
	if err := s.getSection(ctx, athleteID, sectionStats, &doc); err != nil {
		return nil, err
	}
	if doc.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: stats v%d", ErrUnsupportedSchema, doc.SchemaVersion)
	}
	return &doc, nil
}

func (s *Store) StoreSyncStatus(ctx context.Context, athleteID int64, status SyncStatusDocument) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.storeSyncStatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("athlete.id", athleteID),
		attribute.Bool("sync.success", status.Success),
	)

	status.SchemaVersion = SchemaVersion
	if status.Errors == nil {
		status.Errors = []string{}
	}
	return s.upsertSection(ctx, athleteID, sectionSyncStatus, status)
}

func (s *Store) GetSyncStatus(ctx context.Context, athleteID int64) (_ *SyncStatusDocument, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.getSyncStatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("athlete.id", athleteID))

	var doc SyncStatusDocument
	if err := s.getSection(ctx, athleteID, sectionSyncStatus, &doc); err != nil {
		return nil, err
	}
	if doc.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: sync status v%d", ErrUnsupportedSchema, doc.SchemaVersion)
	}
	return &doc, nil
}

// StoreActivities upserts each activity keyed by its id. Stored fields the
// incoming activity does not carry are kept. On failure it returns the number
// of activities written before the error.
func (s *Store) StoreActivities(ctx context.Context, athleteID int64, activities []strava.Activity) (stored int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.storeActivities")
	defer func() {
		span.SetAttributes(attribute.Int("activities.stored", stored))
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("athlete.id", athleteID),
		attribute.Int("activities.count", len(activities)),
	)

	if err := s.ready(); err != nil {
		return 0, err
	}

	for _, activity := range activities {
		if err := ctx.Err(); err != nil {
			return stored, err
		}

		docJson, err := json.Marshal(activity)
		if err != nil {
			return stored, fmt.Errorf("marshal activity %d: %w", activity.ID, err)
		}

		var startDate *time.Time
		if !activity.StartDate.IsZero() {
			startDate = &activity.StartDate
		}

		now := s.Now()
		if _, err := s.db.Exec(
			ctx,
			`INSERT INTO athlete_activity
					(athlete_id, activity_id, start_date, doc, stored_at, updated_at)
				VALUES ($1, $2, $3, $4::jsonb, $5, $5)
				ON CONFLICT (athlete_id, activity_id) DO UPDATE SET
					doc = athlete_activity.doc || EXCLUDED.doc,
					start_date = COALESCE(EXCLUDED.start_date, athlete_activity.start_date),
					updated_at = EXCLUDED.updated_at;`,
			athleteID, activity.ID, startDate, string(docJson), now,
		); err != nil {
			return stored, s.wrapErr(fmt.Errorf("upsert activity %d: %w", activity.ID, err))
		}
		stored++
	}

	return stored, nil
}

func (s *Store) GetActivity(ctx context.Context, athleteID, activityID int64) (_ *StoredActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.getActivity")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("athlete.id", athleteID),
		attribute.Int64("activity.id", activityID),
	)

	if err := s.ready(); err != nil {
		return nil, err
	}

	var (
		raw      []byte
		activity StoredActivity
	)
	if err := s.db.QueryRow(
		ctx,
		`SELECT doc, stored_at, updated_at FROM athlete_activity WHERE athlete_id = $1 AND activity_id = $2;`,
		athleteID, activityID,
	).Scan(&raw, &activity.StoredAt, &activity.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, s.wrapErr(err)
	}

	if err := json.Unmarshal(raw, &activity.Activity); err != nil {
		return nil, fmt.Errorf("unmarshal activity %d: %w", activityID, err)
	}

	return &activity, nil
}

// ListActivities returns all stored activities of an athlete ordered by
// start date, then id.
func (s *Store) ListActivities(ctx context.Context, athleteID int64) (_ []strava.Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.listActivities")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("athlete.id", athleteID))

	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		ctx,
		`SELECT doc FROM athlete_activity
			WHERE athlete_id = $1
			ORDER BY start_date ASC NULLS FIRST, activity_id ASC;`,
		athleteID,
	)
	if err != nil {
		return nil, s.wrapErr(err)
	}
	defer rows.Close()

	var activities []strava.Activity
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		var activity strava.Activity
		if err := json.Unmarshal(raw, &activity); err != nil {
			return nil, fmt.Errorf("unmarshal activity: %w", err)
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, s.wrapErr(err)
	}

	span.SetAttributes(attribute.Int("activities.count", len(activities)))

	return activities, nil
}

func (s *Store) CountActivities(ctx context.Context, athleteID int64) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.countActivities")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.ready(); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM athlete_activity WHERE athlete_id = $1;`,
		athleteID,
	).Scan(&count); err != nil {
		return 0, s.wrapErr(err)
	}

	return count, nil
}

// upsertSection merges value under doc[section]. The first stored_at of the
// section survives later writes.
func (s *Store) upsertSection(ctx context.Context, athleteID int64, section string, value any) error {
	if err := s.ready(); err != nil {
		return err
	}

	docJson, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", section, err)
	}

	if _, err := s.db.Exec(
		ctx,
		`INSERT INTO athlete (id, doc, created_at, updated_at)
			VALUES ($1, jsonb_build_object($2::text, $3::jsonb), $4, $4)
			ON CONFLICT (id) DO UPDATE SET
				doc = athlete.doc || jsonb_build_object(
					$2::text,
					$3::jsonb || jsonb_strip_nulls(jsonb_build_object('stored_at', athlete.doc -> $2::text -> 'stored_at'))
				),
				updated_at = $4;`,
		athleteID, section, string(docJson), s.Now(),
	); err != nil {
		return s.wrapErr(fmt.Errorf("upsert %s: %w", section, err))
	}

	return nil
}

func (s *Store) getSection(ctx context.Context, athleteID int64, section string, out any) error {
	if err := s.ready(); err != nil {
		return err
	}

	var raw []byte
	if err := s.db.QueryRow(
		ctx,
		`SELECT doc -> $2::text FROM athlete WHERE id = $1;`,
		athleteID, section,
	).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return s.wrapErr(err)
	}
	if raw == nil {
		return ErrNotFound
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", section, err)
	}

	return nil
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return ErrStoreUnavailable
	}
	return nil
}

// wrapErr marks connection level failures as ErrStoreUnavailable.
func (s *Store) wrapErr(err error) error {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return err
}
