package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Payphone-Digital/videotube/pkg/logger"
	"gorm.io/gorm"
)

// logResult logs the outcome of a query. Not-found is expected traffic and
// stays at debug level.
func logResult(ctx context.Context, msg string, start time.Time, err error) {
	duration := time.Since(start)
	switch {
	case err == nil:
		logger.DebugWithContext(ctx, msg).Duration(duration).Log()
	case errors.Is(err, gorm.ErrRecordNotFound):
		logger.DebugWithContext(ctx, msg+": not found").Duration(duration).Log()
	default:
		logger.ErrorWithContext(ctx, msg+": failed").Duration(duration).Err(err).Log()
	}
}

// sortColumns whitelists what list endpoints may order by
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"views":      "views",
	"duration":   "duration",
	"title":      "title",
}

func orderClause(sortBy, sortType string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	if sortType == "asc" {
		return column + " asc"
	}
	return column + " desc"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds an ILIKE pattern matching q literally anywhere in the column
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
