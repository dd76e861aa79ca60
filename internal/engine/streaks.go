package engine

import (
	"sort"
	"time"

	"github.com/craveless/backend/internal/models"
)

// ComputeInterventionStreaks computes the consecutive-success streaks
// over intervention outcomes. The current streak is the leading run of
// successes walking outcomes most recent first; it breaks at the first
// failure. The longest streak is the maximum run of consecutive
// successes anywhere in the chronological history. Empty input yields
// zeros.
func ComputeInterventionStreaks(outcomes []models.InterventionOutcome) models.Streak {
	if len(outcomes) == 0 {
		return models.Streak{}
	}

	chronological := make([]models.InterventionOutcome, len(outcomes))
	copy(chronological, outcomes)
	sort.SliceStable(chronological, func(i, j int) bool {
		return chronological[i].Timestamp.Before(chronological[j].Timestamp)
	})

	var streak models.Streak
	for i := len(chronological) - 1; i >= 0; i-- {
		if !chronological[i].Successful {
			break
		}
		streak.Current++
	}

	run := 0
	for _, o := range chronological {
		if o.Successful {
			run++
			if run > streak.Longest {
				streak.Longest = run
			}
		} else {
			run = 0
		}
	}
	return streak
}

// ComputeDayStreaks computes logging streaks over distinct calendar
// dates (not event counts). The current streak counts back from today,
// or from the most recent log day when that day is yesterday; a gap of
// more than one day means the current streak is 0. The longest streak
// is the longest run of dates each exactly one day after the previous.
func ComputeDayStreaks(events []models.CravingEvent, now time.Time) models.Streak {
	if len(events) == 0 {
		return models.Streak{}
	}

	seen := make(map[string]bool)
	for _, e := range events {
		seen[e.Timestamp.Format(dateLayout)] = true
	}

	dateStrs := make([]string, 0, len(seen))
	for d := range seen {
		dateStrs = append(dateStrs, d)
	}
	sort.Strings(dateStrs)

	dates := make([]time.Time, 0, len(dateStrs))
	for _, d := range dateStrs {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	if len(dates) == 0 {
		return models.Streak{}
	}

	var streak models.Streak
	run := 1
	streak.Longest = 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > streak.Longest {
			streak.Longest = run
		}
	}

	today, err := time.Parse(dateLayout, now.Format(dateLayout))
	if err != nil {
		return streak
	}
	latest := dates[len(dates)-1]
	if today.Sub(latest) > 24*time.Hour {
		return streak // streak already broken before today
	}

	streak.Current = 1
	for i := len(dates) - 2; i >= 0; i-- {
		if dates[i+1].Sub(dates[i]) != 24*time.Hour {
			break
		}
		streak.Current++
	}
	return streak
}
