package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/daybook/internal"
	"github.com/yourname/daybook/internal/service"
)

var errBadMonth = errors.New("month must be between 1 and 12")

// daysInMonth relies on the day-zero normalization of time.Date: day 0 of
// the following month is the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// GetJournalStats derives streaks, the per-day activity calendar and the
// entry-time series for one month. Defaults to the current month; streaks
// always consider the full history.
func GetJournalStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		now := time.Now()
		year := now.Year()
		month := now.Month()
		if raw := c.Query("year"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				HandleError(c, app.Logger(), err, 400, "Invalid year")
				return
			}
			year = n
		}
		if raw := c.Query("month"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 12 {
				HandleError(c, app.Logger(), errBadMonth, 400, "Invalid month")
				return
			}
			month = time.Month(n)
		}

		entries, err := app.JournalRepo().ListEntries(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch entries for stats")
			return
		}

		streaks := service.CalculateStreaks(entries, now)

		monthEntries := service.FilterEntriesForCurrentMonth(entries, year, month)
		activity := service.GenerateActivityData(monthEntries, year, month, daysInMonth(year, month))
		entryTimes := service.GenerateEntryTimesData(monthEntries)
		activityDays := service.GetActivityDaysForMonth(entries, year, month)

		meta := map[string]any{
			"year":  year,
			"month": int(month),
		}
		HandleSuccess(c, app.Logger(), gin.H{
			"streaks":       streaks,
			"activity":      activity,
			"entry_times":   entryTimes,
			"activity_days": activityDays,
		}, meta)
	}
}
