package records

import (
	"math"
	"time"

	"github.com/2beens/trainerdash/internal/strava"
)

type Method string

const (
	MethodExact    Method = "exact"
	MethodEstimate Method = "estimate"
)

// exactTolerance is the fraction of a target distance within which an
// activity counts as an exact match.
const exactTolerance = 0.05

type Target struct {
	Label    string  `json:"label"`
	Distance float64 `json:"distance"`
}

var RunningTargets = []Target{
	{Label: "400m", Distance: 400},
	{Label: "1K", Distance: 1000},
	{Label: "1 Mile", Distance: 1609.34},
	{Label: "5K", Distance: 5000},
	{Label: "10K", Distance: 10000},
	{Label: "15K", Distance: 15000},
	{Label: "Half Marathon", Distance: 21097.5},
	{Label: "Marathon", Distance: 42195},
}

var CyclingTargets = []Target{
	{Label: "5 Mile", Distance: 8046.72},
	{Label: "10K", Distance: 10000},
	{Label: "10 Mile", Distance: 16093.4},
	{Label: "20K", Distance: 20000},
	{Label: "30K", Distance: 30000},
	{Label: "40K", Distance: 40000},
	{Label: "50K", Distance: 50000},
	{Label: "50 Mile", Distance: 80467.2},
	{Label: "100K", Distance: 100000},
	{Label: "100 Mile", Distance: 160934.4},
	{Label: "180K", Distance: 180000},
}

var (
	runningKeywords = []string{"run", "running"}
	cyclingKeywords = []string{"ride", "cycling"}
)

type ActivityRef struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
}

func refOf(activity strava.Activity) ActivityRef {
	return ActivityRef{
		ID:        activity.ID,
		Name:      activity.Name,
		StartDate: activity.StartDate,
	}
}

type ValueRecord struct {
	Value    float64     `json:"value"`
	Activity ActivityRef `json:"activity"`
}

// DistanceRecord is the best time over one target distance.
type DistanceRecord struct {
	TargetDistance float64     `json:"target_distance"`
	TimeSeconds    float64     `json:"time_seconds"`
	Activity       ActivityRef `json:"activity"`
	Method         Method      `json:"method"`
}

type SportRecords struct {
	Count                int          `json:"count"`
	LongestDistance      *ValueRecord `json:"longest_distance,omitempty"`
	FastestAverageSpeed  *ValueRecord `json:"fastest_average_speed,omitempty"`
	BiggestElevationGain *ValueRecord `json:"biggest_elevation_gain,omitempty"`
}

// GeneralRecords are keyed by sport.
type GeneralRecords map[string]*SportRecords

type RunningRecords struct {
	Count int `json:"count"`
	// Distances are keyed by target label; targets no run qualifies for are absent.
	Distances  map[string]*DistanceRecord `json:"distances"`
	LongestRun *ValueRecord               `json:"longest_run,omitempty"`
}

type CyclingRecords struct {
	Count              int                        `json:"count"`
	Distances          map[string]*DistanceRecord `json:"distances"`
	LongestRide        *ValueRecord               `json:"longest_ride,omitempty"`
	BiggestClimb       *ValueRecord               `json:"biggest_climb,omitempty"`
	TotalElevationGain float64                    `json:"total_elevation_gain"`
}

// improveMax replaces the record only on a strictly greater value.
func improveMax(current *ValueRecord, value float64, activity strava.Activity) *ValueRecord {
	if value <= 0 {
		return current
	}
	if current != nil && value <= current.Value {
		return current
	}
	return &ValueRecord{Value: value, Activity: refOf(activity)}
}

// ComputeGeneral groups activities by sport and tracks count, longest
// distance, fastest average speed and biggest elevation gain per sport.
func ComputeGeneral(activities []strava.Activity) GeneralRecords {
	general := GeneralRecords{}
	for _, activity := range activities {
		sport := activity.Sport()
		sportRecords, ok := general[sport]
		if !ok {
			sportRecords = &SportRecords{}
			general[sport] = sportRecords
		}

		sportRecords.Count++
		sportRecords.LongestDistance = improveMax(sportRecords.LongestDistance, activity.Distance, activity)
		sportRecords.FastestAverageSpeed = improveMax(sportRecords.FastestAverageSpeed, activity.AverageSpeed, activity)
		sportRecords.BiggestElevationGain = improveMax(sportRecords.BiggestElevationGain, activity.TotalElevationGain, activity)
	}
	return general
}

// candidateTime returns the time an activity yields for a target distance.
// Activities within the tolerance count with their own moving time; longer
// ones are scaled down linearly.
func candidateTime(activity strava.Activity, target float64) (float64, Method, bool) {
	if activity.Distance <= 0 || activity.MovingTime <= 0 {
		return 0, "", false
	}

	movingTime := float64(activity.MovingTime)
	if math.Abs(activity.Distance-target) <= target*exactTolerance {
		return movingTime, MethodExact, true
	}
	if activity.Distance >= target {
		return movingTime * (target / activity.Distance), MethodEstimate, true
	}
	return 0, "", false
}

func improveDistances(distances map[string]*DistanceRecord, targets []Target, activity strava.Activity) {
	for _, target := range targets {
		timeSeconds, method, ok := candidateTime(activity, target.Distance)
		if !ok {
			continue
		}
		current, exists := distances[target.Label]
		if exists && timeSeconds >= current.TimeSeconds {
			continue
		}
		distances[target.Label] = &DistanceRecord{
			TargetDistance: target.Distance,
			TimeSeconds:    timeSeconds,
			Activity:       refOf(activity),
			Method:         method,
		}
	}
}

func ComputeRunning(activities []strava.Activity) *RunningRecords {
	running := &RunningRecords{
		Distances: map[string]*DistanceRecord{},
	}
	for _, activity := range activities {
		if !activity.SportMatches(runningKeywords...) {
			continue
		}
		running.Count++
		running.LongestRun = improveMax(running.LongestRun, activity.Distance, activity)
		improveDistances(running.Distances, RunningTargets, activity)
	}
	return running
}

func ComputeCycling(activities []strava.Activity) *CyclingRecords {
	cycling := &CyclingRecords{
		Distances: map[string]*DistanceRecord{},
	}
	for _, activity := range activities {
		if !activity.SportMatches(cyclingKeywords...) {
			continue
		}
		cycling.Count++
		cycling.LongestRide = improveMax(cycling.LongestRide, activity.Distance, activity)
		cycling.BiggestClimb = improveMax(cycling.BiggestClimb, activity.TotalElevationGain, activity)
		cycling.TotalElevationGain += activity.TotalElevationGain
		improveDistances(cycling.Distances, CyclingTargets, activity)
	}
	return cycling
}
