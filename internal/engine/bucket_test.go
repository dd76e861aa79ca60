package engine

import (
	"testing"
	"time"

	"github.com/craveless/backend/internal/models"
)

func TestBucketFor_Boundaries(t *testing.T) {
	cases := []struct {
		hour int
		want models.TimeBucket
	}{
		{0, models.BucketNight},
		{4, models.BucketNight},
		{5, models.BucketMorning},
		{11, models.BucketMorning},
		{12, models.BucketAfternoon},
		{16, models.BucketAfternoon},
		{17, models.BucketEvening},
		{21, models.BucketEvening},
		{22, models.BucketNight},
		{23, models.BucketNight},
	}

	for _, tc := range cases {
		ts := time.Date(2025, 3, 10, tc.hour, 30, 0, 0, time.UTC)
		if got := BucketFor(ts); got != tc.want {
			t.Errorf("hour %d: expected %s, got %s", tc.hour, tc.want, got)
		}
	}
}

func TestBucketFor_Total(t *testing.T) {
	// Every hour of the day must map to exactly one bucket
	for hour := 0; hour < 24; hour++ {
		ts := time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC)
		bucket := BucketFor(ts)
		found := false
		for _, b := range models.AllTimeBuckets {
			if b == bucket {
				found = true
			}
		}
		if !found {
			t.Errorf("hour %d mapped to unknown bucket %q", hour, bucket)
		}
	}
}
