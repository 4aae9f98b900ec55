package strava

import (
	"strings"
	"time"
)

// Activity is a summary activity as returned by GET /athlete/activities.
// Distances are in meters, times in seconds, speeds in meters per second.
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	Distance           float64   `json:"distance"`
	MovingTime         int       `json:"moving_time"`
	ElapsedTime        int       `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	AverageSpeed       float64   `json:"average_speed"`
	MaxSpeed           float64   `json:"max_speed"`
	HasHeartrate       bool      `json:"has_heartrate"`
	AverageHeartrate   float64   `json:"average_heartrate,omitempty"`
	MaxHeartrate       float64   `json:"max_heartrate,omitempty"`
	AchievementCount   int       `json:"achievement_count"`
	KudosCount         int       `json:"kudos_count"`
	CommentCount       int       `json:"comment_count"`
	StartDate          time.Time `json:"start_date"`
	StartDateLocal     time.Time `json:"start_date_local"`
	Timezone           string    `json:"timezone,omitempty"`
	StartLatLng        []float64 `json:"start_latlng,omitempty"`
	EndLatLng          []float64 `json:"end_latlng,omitempty"`
	Map                *Map      `json:"map,omitempty"`
}

type Map struct {
	ID              string `json:"id"`
	SummaryPolyline string `json:"summary_polyline"`
}

// Sport returns the sport_type, falling back to type, then "Unknown".
func (a Activity) Sport() string {
	if a.SportType != "" {
		return a.SportType
	}
	if a.Type != "" {
		return a.Type
	}
	return "Unknown"
}

// SportMatches reports whether the activity sport contains any of the given
// keywords, case-insensitively.
func (a Activity) SportMatches(keywords ...string) bool {
	sport := strings.ToLower(a.Sport())
	for _, k := range keywords {
		if strings.Contains(sport, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// Totals are the aggregate numbers of one window and sport family.
type Totals struct {
	Count            int     `json:"count"`
	Distance         float64 `json:"distance"`
	MovingTime       int     `json:"moving_time"`
	ElapsedTime      int     `json:"elapsed_time"`
	ElevationGain    float64 `json:"elevation_gain"`
	AchievementCount int     `json:"achievement_count,omitempty"`
}

// AthleteStats mirrors GET /athletes/{id}/stats.
type AthleteStats struct {
	BiggestRideDistance       float64 `json:"biggest_ride_distance"`
	BiggestClimbElevationGain float64 `json:"biggest_climb_elevation_gain"`
	RecentRideTotals          Totals  `json:"recent_ride_totals"`
	RecentRunTotals           Totals  `json:"recent_run_totals"`
	RecentSwimTotals          Totals  `json:"recent_swim_totals"`
	YTDRideTotals             Totals  `json:"ytd_ride_totals"`
	YTDRunTotals              Totals  `json:"ytd_run_totals"`
	YTDSwimTotals             Totals  `json:"ytd_swim_totals"`
	AllRideTotals             Totals  `json:"all_ride_totals"`
	AllRunTotals              Totals  `json:"all_run_totals"`
	AllSwimTotals             Totals  `json:"all_swim_totals"`
}

// Profile holds the arbitrary athlete attributes returned by GET /athlete.
type Profile map[string]any

// ID returns the numeric athlete id of the profile, or 0 if missing.
func (p Profile) ID() int64 {
	switch v := p["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
