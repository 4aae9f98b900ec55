package store

import (
	"errors"
	"time"

	"github.com/2beens/trainerdash/internal/strava"
)

// SchemaVersion is written into every athlete document section.
const SchemaVersion = 1

const (
	sectionProfile    = "profile"
	sectionStats      = "stats"
	sectionSyncStatus = "syncStatus"
)

var (
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrNotFound          = errors.New("document not found")
	ErrUnsupportedSchema = errors.New("unsupported document schema version")
)

type ProfileDocument struct {
	SchemaVersion int            `json:"schema_version"`
	Attributes    strava.Profile `json:"attributes"`
	// StoredAt is set on first write and preserved by later merges.
	StoredAt  time.Time `json:"stored_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SportTotals struct {
	Run  strava.Totals `json:"run"`
	Ride strava.Totals `json:"ride"`
	Swim strava.Totals `json:"swim"`
}

type StatsDocument struct {
	SchemaVersion             int         `json:"schema_version"`
	AllTime                   SportTotals `json:"all_time"`
	Recent                    SportTotals `json:"recent"`
	YearToDate                SportTotals `json:"ytd"`
	BiggestRideDistance       float64     `json:"biggest_ride_distance"`
	BiggestClimbElevationGain float64     `json:"biggest_climb_elevation_gain"`
	UpdatedAt                 time.Time   `json:"updated_at"`
}

func NewStatsDocument(stats *strava.AthleteStats, updatedAt time.Time) StatsDocument {
	doc := StatsDocument{
		SchemaVersion: SchemaVersion,
		UpdatedAt:     updatedAt,
	}
	if stats == nil {
		return doc
	}

	doc.AllTime = SportTotals{Run: stats.AllRunTotals, Ride: stats.AllRideTotals, Swim: stats.AllSwimTotals}
	doc.Recent = SportTotals{Run: stats.RecentRunTotals, Ride: stats.RecentRideTotals, Swim: stats.RecentSwimTotals}
	doc.YearToDate = SportTotals{Run: stats.YTDRunTotals, Ride: stats.YTDRideTotals, Swim: stats.YTDSwimTotals}
	doc.BiggestRideDistance = stats.BiggestRideDistance
	doc.BiggestClimbElevationGain = stats.BiggestClimbElevationGain

	return doc
}

type StageStatus struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Count   int    `json:"count,omitempty"`
}

type SyncStatusDocument struct {
	SchemaVersion int                    `json:"schema_version"`
	RunID         string                 `json:"run_id,omitempty"`
	LastSyncTime  time.Time              `json:"last_sync_time"`
	Success       bool                   `json:"success"`
	Errors        []string               `json:"errors"`
	Results       map[string]StageStatus `json:"results"`
}

type StoredActivity struct {
	strava.Activity
	StoredAt  time.Time `json:"stored_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
