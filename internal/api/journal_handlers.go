package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourname/daybook/internal"
	"github.com/yourname/daybook/internal/service"
)

const defaultPageSize = 50

var errInvalidParam = errors.New("must be a non-negative integer")

type entryPage struct {
	Entries   []internal.JournalEntry `json:"entries"`
	Count     int                     `json:"count"`
	NextToken string                  `json:"next_token,omitempty"`
}

func PostEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.JournalEntryRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateJournalEntryRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		entry, err := service.CreateJournalEntry(c.Request.Context(), app.JournalRepo(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save entry")
			return
		}

		HandleSuccess(c, app.Logger(), entry, nil)
	}
}

// ListEntries pages through a user's entries, most recent first. The page
// token is an opaque offset handed back as next_token when more remain.
func ListEntries(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		limit := defaultPageSize
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				HandleError(c, app.Logger(), errInvalidParam, 400, "Invalid limit")
				return
			}
			limit = n
		}
		offset := 0
		if raw := c.Query("nextToken"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				HandleError(c, app.Logger(), errInvalidParam, 400, "Invalid nextToken")
				return
			}
			offset = n
		}

		entries, err := app.JournalRepo().ListEntries(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch entries")
			return
		}

		page := entryPage{Entries: []internal.JournalEntry{}}
		if offset < len(entries) {
			end := offset + limit
			if end > len(entries) {
				end = len(entries)
			}
			page.Entries = entries[offset:end]
			if end < len(entries) {
				page.NextToken = strconv.Itoa(end)
			}
		}
		page.Count = len(page.Entries)

		HandleSuccess(c, app.Logger(), page, nil)
	}
}

func GetEntryCount(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		count, err := app.JournalRepo().CountEntries(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to count entries")
			return
		}

		HandleSuccess(c, app.Logger(), nil, map[string]any{"count": count})
	}
}

func PutEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		id := c.Param("id")

		var body service.JournalEntryRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateJournalEntryRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		entry, err := service.UpdateJournalEntry(c.Request.Context(), app.JournalRepo(), user, id, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 404, "Entry not found")
			return
		}

		HandleSuccess(c, app.Logger(), entry, nil)
	}
}

func DeleteEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		id := c.Param("id")

		if err := app.JournalRepo().DeleteEntry(c.Request.Context(), user.ID, id); err != nil {
			HandleError(c, app.Logger(), err, 404, "Entry not found")
			return
		}

		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": id})
	}
}
