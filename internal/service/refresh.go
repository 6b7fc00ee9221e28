package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"runstreak/internal/store"
	"runstreak/internal/strava"
	"runstreak/internal/streak"
)

// ActivitySource fetches activity summaries from the remote API.
// *strava.Client satisfies it; tests supply fakes.
type ActivitySource interface {
	GetAllActivities(ctx context.Context, after time.Time, onProgress func(fetched int)) ([]strava.Activity, error)
}

// Storage is the slice of the store the refresh flow needs.
type Storage interface {
	GetStreakState(athleteID int64) (*store.StreakState, error)
	SaveStreakState(*store.StreakState) error
	UpsertActivity(*store.Activity) error
	ListActivitiesSince(athleteID int64, since time.Time) ([]store.Activity, error)
	GetSyncState(key string) (string, error)
	SetSyncState(key, value string) error
}

// RefreshConfig carries the per-athlete settings a refresh needs
type RefreshConfig struct {
	AthleteID         int64
	Goal              streak.Goal
	Milestones        streak.MilestoneTable
	InitialLoadMonths int
}

// RefreshService syncs recent activities and recomputes the streak.
// A mutex serializes refreshes: the TUI can ask for one while a timer
// triggered another, and interleaving the fetch-store-compute sequence
// would corrupt the checkpoint.
type RefreshService struct {
	mu     sync.Mutex
	source ActivitySource
	store  Storage
	cfg    RefreshConfig

	// now is replaceable in tests
	now func() time.Time
}

// NewRefreshService creates a refresh service
func NewRefreshService(source ActivitySource, storage Storage, cfg RefreshConfig) *RefreshService {
	return &RefreshService{
		source: source,
		store:  storage,
		cfg:    cfg,
		now:    time.Now,
	}
}

// RefreshResult is everything a caller needs to render after a refresh
type RefreshResult struct {
	Data streak.StreakData

	// Stale is set when the remote fetch failed and the result was
	// computed from cached activities only.
	Stale bool

	// Fetched is how many activities the remote returned this refresh
	Fetched int

	DaysToNext      int
	Milestone       streak.Milestone
	MilestoneMoment bool
}

// Refresh fetches recent activities, merges them into the local cache
// and recomputes the streak.
//
// With a valid stored checkpoint only the recent window is fetched and
// the incremental update runs; without one (first run, or a corrupt
// checkpoint) the full initial-load window is fetched and the streak is
// rebuilt from scratch. A failed fetch degrades to a cache-only
// computation, except for authorization failures, which are returned so
// the caller can re-run the OAuth flow.
func (s *RefreshService) Refresh(ctx context.Context, onProgress func(fetched int)) (*RefreshResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	today := streak.DateOf(now)

	prior, err := s.loadCheckpoint()
	if err != nil {
		return nil, fmt.Errorf("loading streak state: %w", err)
	}

	// The incremental update only examines the recent window. A checkpoint
	// last confirmed before the window's oldest day leaves the days in
	// between unexamined, so a completed window would bridge an arbitrarily
	// long idle gap. Rebuild cold instead.
	if prior != nil && prior.LastConfirmed.Before(today.AddDays(-(streak.WindowDays - 1))) {
		prior = nil
	}

	after := now.AddDate(0, 0, -(streak.WindowDays + 1))
	if prior == nil {
		after = now.AddDate(0, -s.cfg.InitialLoadMonths, 0)
	}

	result := &RefreshResult{}

	fetched, err := s.source.GetAllActivities(ctx, after, onProgress)
	switch {
	case errors.Is(err, strava.ErrUnauthorized):
		return nil, err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case err != nil:
		result.Stale = true
	default:
		result.Fetched = len(fetched)
		for _, a := range fetched {
			if a.Type != "Run" {
				continue
			}
			if err := s.store.UpsertActivity(convertActivity(a, s.cfg.AthleteID)); err != nil {
				return nil, fmt.Errorf("storing activity %d: %w", a.ID, err)
			}
		}
	}

	// The incremental path only looks at the recent window; the cold
	// path needs the whole cached history for the longest-streak pass.
	var since time.Time
	if prior != nil {
		since = now.AddDate(0, 0, -(streak.WindowDays + 1))
	}
	stored, err := s.store.ListActivitiesSince(s.cfg.AthleteID, since)
	if err != nil {
		return nil, fmt.Errorf("reading cached activities: %w", err)
	}

	result.Data = streak.Compute(toStreakActivities(stored), now, prior, s.cfg.Goal)

	if err := s.store.SaveStreakState(stateToStore(s.cfg.AthleteID, result.Data.State)); err != nil {
		return nil, fmt.Errorf("saving streak state: %w", err)
	}
	if !result.Stale {
		if err := s.store.SetSyncState(lastRefreshKey, now.Format(time.RFC3339)); err != nil {
			return nil, fmt.Errorf("recording refresh time: %w", err)
		}
	}

	s.annotateMilestone(result, today)
	return result, nil
}

// LastRefresh returns when the last successful refresh finished, or the
// zero time if none has.
func (s *RefreshService) LastRefresh() time.Time {
	v, err := s.store.GetSyncState(lastRefreshKey)
	if err != nil || v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

const lastRefreshKey = "last_refresh"

// loadCheckpoint returns the stored streak state, or nil when the
// computation must start cold. A corrupt checkpoint degrades to a cold
// start rather than failing the refresh.
func (s *RefreshService) loadCheckpoint() (*streak.State, error) {
	st, err := s.store.GetStreakState(s.cfg.AthleteID)
	if errors.Is(err, store.ErrNoState) || errors.Is(err, store.ErrStateInvalid) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return stateFromStore(st)
}

func (s *RefreshService) annotateMilestone(r *RefreshResult, today streak.Date) {
	current := r.Data.State.Current
	r.DaysToNext = s.cfg.Milestones.DaysToNext(current)
	r.MilestoneMoment = streak.IsMilestoneMoment(
		r.DaysToNext, r.Data.TodayCompleted, r.Data.State.LastConfirmed, today)
	if !r.MilestoneMoment {
		return
	}
	if r.DaysToNext == 0 {
		r.Milestone, _ = s.cfg.Milestones.At(current)
	} else {
		r.Milestone, _ = s.cfg.Milestones.At(current + 1)
	}
}

// convertActivity maps an API activity to its stored form
func convertActivity(a strava.Activity, athleteID int64) *store.Activity {
	if a.Athlete.ID != 0 {
		athleteID = a.Athlete.ID
	}
	return &store.Activity{
		ID:             a.ID,
		AthleteID:      athleteID,
		Name:           a.Name,
		Type:           a.Type,
		SportType:      a.SportType,
		StartDate:      a.StartDate,
		StartDateLocal: a.StartDateLocal,
		Timezone:       a.Timezone,
		Distance:       a.Distance,
		MovingTime:     a.MovingTime,
		ElapsedTime:    a.ElapsedTime,
		Trainer:        a.Trainer,
	}
}

// toStreakActivities maps stored activities to the engine's terms.
// Treadmill runs and virtual runs count toward the streak but not as
// outdoor runs.
func toStreakActivities(stored []store.Activity) []streak.Activity {
	out := make([]streak.Activity, 0, len(stored))
	for _, a := range stored {
		out = append(out, streak.Activity{
			ID:             a.ID,
			Name:           a.Name,
			Type:           a.Type,
			StartDateLocal: streak.DateOf(a.StartDateLocal),
			MovingTime:     a.MovingTime,
			Distance:       a.Distance,
			Outdoor:        !a.Trainer && a.SportType != "VirtualRun",
		})
	}
	return out
}

// stateFromStore converts a persisted checkpoint to engine state
func stateFromStore(st *store.StreakState) (*streak.State, error) {
	parse := func(s string) (streak.Date, error) {
		if s == "" {
			return streak.Date{}, nil
		}
		return streak.ParseDate(s)
	}

	currentStart, err := parse(st.CurrentStart)
	if err != nil {
		return nil, err
	}
	lastConfirmed, err := parse(st.LastConfirmed)
	if err != nil {
		return nil, err
	}
	longestStart, err := parse(st.LongestStart)
	if err != nil {
		return nil, err
	}

	return &streak.State{
		Current:       st.Current,
		CurrentStart:  currentStart,
		LastConfirmed: lastConfirmed,
		Longest:       st.Longest,
		LongestStart:  longestStart,
		Stats: streak.Stats{
			Runs:          st.Runs,
			MinimumDays:   st.MinimumDays,
			OutdoorRuns:   st.OutdoorRuns,
			TotalDuration: st.TotalDuration,
			TotalDistance: st.TotalDistance,
		},
	}, nil
}

// stateToStore converts engine state to its persisted form
func stateToStore(athleteID int64, st streak.State) *store.StreakState {
	format := func(d streak.Date) string {
		if d.IsZero() {
			return ""
		}
		return d.String()
	}

	return &store.StreakState{
		AthleteID:     athleteID,
		Current:       st.Current,
		CurrentStart:  format(st.CurrentStart),
		LastConfirmed: format(st.LastConfirmed),
		Longest:       st.Longest,
		LongestStart:  format(st.LongestStart),
		Runs:          st.Stats.Runs,
		MinimumDays:   st.Stats.MinimumDays,
		OutdoorRuns:   st.Stats.OutdoorRuns,
		TotalDuration: st.Stats.TotalDuration,
		TotalDistance: st.Stats.TotalDistance,
	}
}
