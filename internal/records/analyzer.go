package records

import (
	"context"

	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=$GOFILE -destination=records_mocks_test.go -package=records_test

type activitiesRepo interface {
	ListActivities(ctx context.Context, athleteID int64) ([]strava.Activity, error)
}

type Summary struct {
	General GeneralRecords  `json:"general"`
	Running *RunningRecords `json:"running"`
	Cycling *CyclingRecords `json:"cycling"`
}

// Analyzer computes records from the stored activities of an athlete.
// It never writes back to the store.
type Analyzer struct {
	repo activitiesRepo
}

func NewAnalyzer(repo activitiesRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

func (a *Analyzer) General(ctx context.Context, athleteID int64) (_ GeneralRecords, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.records.general")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	activities, err := a.list(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	return ComputeGeneral(activities), nil
}

func (a *Analyzer) Running(ctx context.Context, athleteID int64) (_ *RunningRecords, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.records.running")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	activities, err := a.list(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	return ComputeRunning(activities), nil
}

func (a *Analyzer) Cycling(ctx context.Context, athleteID int64) (_ *CyclingRecords, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.records.cycling")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	activities, err := a.list(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	return ComputeCycling(activities), nil
}

// All runs the three passes over a single read of the activities.
func (a *Analyzer) All(ctx context.Context, athleteID int64) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.records.all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	activities, err := a.list(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		General: ComputeGeneral(activities),
		Running: ComputeRunning(activities),
		Cycling: ComputeCycling(activities),
	}, nil
}

func (a *Analyzer) list(ctx context.Context, athleteID int64) ([]strava.Activity, error) {
	activities, err := a.repo.ListActivities(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int64("athlete.id", athleteID),
		attribute.Int("activities.count", len(activities)),
	)
	return activities, nil
}
