package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yourname/daybook/internal"
)

const dateLayout = "2006-01-02"

type Streaks struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

type ActivityData struct {
	Date     string `json:"date"` // MM/DD
	HasEntry bool   `json:"has_entry"`
}

type EntryTimeData struct {
	Date string  `json:"date"` // MM/DD
	Time float64 `json:"time"` // hour of day in [0, 24)
}

// parseEntryDate reads a YYYY-MM-DD string as UTC midnight. Malformed
// dates are reported via ok=false; callers skip them rather than fail,
// treating them as an upstream data-quality signal.
func parseEntryDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// uniqueDates collapses entries to their distinct calendar-date strings.
// Multiple entries on the same day count once.
func uniqueDates(entries []internal.JournalEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Date]; ok {
			continue
		}
		seen[e.Date] = struct{}{}
		dates = append(dates, e.Date)
	}
	return dates
}

// CalculateStreaks derives the current and longest consecutive-day streaks
// from a set of entries. now is the reference instant for deciding whether
// the current streak is still active: the most recent entry day must be
// today or yesterday relative to now, so skipping a single day before
// writing today's entry does not reset the streak.
func CalculateStreaks(entries []internal.JournalEntry, now time.Time) Streaks {
	if len(entries) == 0 {
		return Streaks{}
	}

	dates := uniqueDates(entries)
	// YYYY-MM-DD sorts lexicographically in chronological order
	sort.Strings(dates)

	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	current := 0
	latest := dates[len(dates)-1]
	if latest == today || latest == yesterday {
		current = 1
		for i := len(dates) - 2; i >= 0; i-- {
			next, okN := parseEntryDate(dates[i+1])
			prev, okP := parseEntryDate(dates[i])
			if !okN || !okP || !next.AddDate(0, 0, -1).Equal(prev) {
				break
			}
			current++
		}
	}

	longest := 1
	run := 1
	for i := 1; i < len(dates); i++ {
		prev, okP := parseEntryDate(dates[i-1])
		curr, okC := parseEntryDate(dates[i])
		if okP && okC && prev.AddDate(0, 0, 1).Equal(curr) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	return Streaks{CurrentStreak: current, LongestStreak: longest}
}

// GenerateActivityData produces one record per day of the given month for
// calendar rendering. Membership is checked by day-of-month only: callers
// must restrict entries to the target month first (FilterEntriesForCurrentMonth),
// otherwise same-numbered days from other months leak in.
func GenerateActivityData(entries []internal.JournalEntry, year int, month time.Month, daysInMonth int) []ActivityData {
	active := make(map[int]bool, len(entries))
	for _, e := range entries {
		if t, ok := parseEntryDate(e.Date); ok {
			active[t.Day()] = true
		}
	}

	data := make([]ActivityData, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		data = append(data, ActivityData{
			Date:     fmt.Sprintf("%02d/%02d", int(month), day),
			HasEntry: active[day],
		})
	}
	return data
}

// GenerateEntryTimesData maps each entry to its time of day for the scatter
// chart. The hour comes from CreatedAt's own clock (hour + minutes/60); an
// absent CreatedAt defaults to noon. Output is sorted ascending by the
// MM/DD label, which is only meaningful within a single month and year,
// the same precondition GenerateActivityData relies on.
func GenerateEntryTimesData(entries []internal.JournalEntry) []EntryTimeData {
	data := make([]EntryTimeData, 0, len(entries))
	for _, e := range entries {
		t, ok := parseEntryDate(e.Date)
		if !ok {
			continue
		}
		hour := 12.0
		if !e.CreatedAt.IsZero() {
			hour = float64(e.CreatedAt.Hour()) + float64(e.CreatedAt.Minute())/60
		}
		data = append(data, EntryTimeData{Date: t.Format("01/02"), Time: hour})
	}
	sort.SliceStable(data, func(i, j int) bool {
		return data[i].Date < data[j].Date
	})
	return data
}

// FilterEntriesForCurrentMonth keeps entries whose date falls in the given
// UTC year and month.
func FilterEntriesForCurrentMonth(entries []internal.JournalEntry, year int, month time.Month) []internal.JournalEntry {
	filtered := make([]internal.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if t, ok := parseEntryDate(e.Date); ok && t.Year() == year && t.Month() == month {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterEntriesForCurrentWeek keeps entries on or after startOfWeek, which
// the caller supplies already normalized to Sunday 00:00:00. Entry dates
// are read in startOfWeek's location so both sides of the comparison share
// a clock.
func FilterEntriesForCurrentWeek(entries []internal.JournalEntry, startOfWeek time.Time) []internal.JournalEntry {
	filtered := make([]internal.JournalEntry, 0, len(entries))
	for _, e := range entries {
		t, err := time.ParseInLocation(dateLayout, e.Date, startOfWeek.Location())
		if err != nil {
			continue
		}
		if !t.Before(startOfWeek) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FormatTime renders a fractional hour as a 12-hour clock string,
// e.g. 14.5 -> "2:30 PM", 0 -> "12:00 AM".
func FormatTime(value float64) string {
	hours := int(math.Floor(value))
	minutes := int(math.Round((value - math.Floor(value)) * 60))
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}

// GetActivityDaysForMonth returns the distinct day-of-month numbers that
// have at least one entry in the given UTC year and month, ascending.
func GetActivityDaysForMonth(entries []internal.JournalEntry, year int, month time.Month) []int {
	seen := make(map[int]struct{})
	for _, e := range FilterEntriesForCurrentMonth(entries, year, month) {
		if t, ok := parseEntryDate(e.Date); ok {
			seen[t.Day()] = struct{}{}
		}
	}
	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}
