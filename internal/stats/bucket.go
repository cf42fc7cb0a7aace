package stats

import (
	"math"
	"sort"
	"time"

	"github.com/yumesaka/playtrack/internal/models"
)

// DateFormat is the calendar date layout used for bucket keys.
const DateFormat = "2006-01-02"

// validSession reports whether a session record carries the fields
// aggregation needs. Malformed rows are skipped, never an error.
func validSession(s models.Session) bool {
	return s.StartTime > 0 && s.EndTime > s.StartTime && s.DurationMinutes > 0
}

// sessionBuckets returns a session's contribution per calendar
// date. A session entirely inside one local day yields one entry;
// a session crossing local midnight is split proportionally so the
// two parts always sum to the full duration.
func sessionBuckets(s models.Session, loc *time.Location) map[string]int {
	start := time.Unix(s.StartTime, 0).In(loc)
	end := time.Unix(s.EndTime, 0).In(loc)

	startDate := start.Format(DateFormat)
	endDate := end.Format(DateFormat)

	if startDate == endDate {
		return map[string]int{endDate: s.DurationMinutes}
	}

	// Proportional split at the midnight opening the end date, so
	// the bucket sum stays exactly equal to the session duration.
	midnight := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc).Unix()
	firstDaySeconds := float64(midnight - s.StartTime)
	totalSeconds := float64(s.EndTime - s.StartTime)

	firstDayMinutes := int(math.Round(firstDaySeconds / totalSeconds * float64(s.DurationMinutes)))
	secondDayMinutes := s.DurationMinutes - firstDayMinutes

	return map[string]int{
		startDate: firstDayMinutes,
		endDate:   secondDayMinutes,
	}
}

// bucketSessions accumulates every valid session's contribution
// into a date-keyed minute total. Input order does not matter.
func bucketSessions(sessions []models.Session, loc *time.Location) map[string]int {
	buckets := make(map[string]int)
	for _, s := range sessions {
		if !validSession(s) {
			continue
		}
		for date, minutes := range sessionBuckets(s, loc) {
			buckets[date] += minutes
		}
	}
	return buckets
}

// sortedDaily flattens a bucket map into the persisted form:
// descending by date, one entry per date.
func sortedDaily(buckets map[string]int) []models.DailyStat {
	daily := make([]models.DailyStat, 0, len(buckets))
	for date, minutes := range buckets {
		daily = append(daily, models.DailyStat{Date: date, Playtime: minutes})
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date > daily[j].Date
	})
	return daily
}
