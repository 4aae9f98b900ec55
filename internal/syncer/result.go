package syncer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/2beens/trainerdash/internal/store"

	"go.uber.org/multierr"
)

type Mode string

const (
	ModeFull  Mode = "full"
	ModeQuick Mode = "quick"
	ModeAuto  Mode = "auto"
)

type Stage string

const (
	StageProfile    Stage = "profile"
	StageStats      Stage = "stats"
	StageActivities Stage = "activities"
	StageSyncStatus Stage = "syncStatus"
)

// AllStages are the data stages in execution order.
var AllStages = []Stage{StageProfile, StageStats, StageActivities}

var ErrUnknownStage = errors.New("unknown sync stage")

// ParseStages parses a comma separated list of stages. An empty list means all stages.
// The returned stages always follow execution order.
func ParseStages(raw string) ([]Stage, error) {
	if strings.TrimSpace(raw) == "" {
		return AllStages, nil
	}

	var requested []Stage
	for _, part := range strings.Split(raw, ",") {
		stage := Stage(strings.TrimSpace(part))
		switch stage {
		case StageProfile, StageStats, StageActivities:
			requested = append(requested, stage)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, part)
		}
	}

	return orderStages(requested), nil
}

// orderStages drops duplicates and puts the stages into execution order.
func orderStages(requested []Stage) []Stage {
	var stages []Stage
	for _, stage := range AllStages {
		if slices.Contains(requested, stage) {
			stages = append(stages, stage)
		}
	}
	return stages
}

type StageResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// Result is the outcome of one sync run. Success is true iff Errors is empty.
type Result struct {
	RunID      string       `json:"runId"`
	Mode       Mode         `json:"mode"`
	AthleteID  int64        `json:"athleteId"`
	Success    bool         `json:"success"`
	Errors     []string     `json:"errors"`
	Profile    *StageResult `json:"profile,omitempty"`
	Stats      *StageResult `json:"stats,omitempty"`
	Activities *StageResult `json:"activities,omitempty"`
	SyncStatus *StageResult `json:"syncStatus,omitempty"`
	Progress   []string     `json:"progress,omitempty"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`

	stageErrs error
}

// Err combines the errors of all failed stages, nil when the run succeeded.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	return r.stageErrs
}

func (r *Result) recordSuccess(stage Stage, count int) {
	r.setStage(stage, &StageResult{Success: true, Count: count})
}

func (r *Result) recordFailure(stage Stage, count int, err error) {
	message := fmt.Sprintf("%s failed: %s", stageLabels[stage], err)
	r.Errors = append(r.Errors, message)
	r.stageErrs = multierr.Append(r.stageErrs, fmt.Errorf("%s: %w", stage, err))
	r.setStage(stage, &StageResult{Success: false, Error: err.Error(), Count: count})
}

func (r *Result) setStage(stage Stage, stageResult *StageResult) {
	switch stage {
	case StageProfile:
		r.Profile = stageResult
	case StageStats:
		r.Stats = stageResult
	case StageActivities:
		r.Activities = stageResult
	case StageSyncStatus:
		r.SyncStatus = stageResult
	}
}

func (r *Result) stageStatuses() map[string]store.StageStatus {
	statuses := map[string]store.StageStatus{}
	add := func(stage Stage, sr *StageResult) {
		if sr == nil {
			return
		}
		statuses[string(stage)] = store.StageStatus{Success: sr.Success, Error: sr.Error, Count: sr.Count}
	}
	add(StageProfile, r.Profile)
	add(StageStats, r.Stats)
	add(StageActivities, r.Activities)
	return statuses
}

var stageLabels = map[Stage]string{
	StageProfile:    "Athlete profile sync",
	StageStats:      "Athlete stats sync",
	StageActivities: "Activities sync",
	StageSyncStatus: "Sync status write",
}
