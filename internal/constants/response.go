package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	ResponseFieldStatusCode = "statusCode"
	ResponseFieldData       = "data"
	ResponseFieldMessage    = "message"
	ResponseFieldSuccess    = "success"
	ResponseFieldErrors     = "errors"

	// Pagination fields
	ResponseFieldItems     = "items"
	ResponseFieldTotal     = "total"
	ResponseFieldPage      = "page"
	ResponseFieldLimit     = "limit"
	ResponseFieldPageTotal = "pageTotal"
)

// Pagination Parameters Struct
type PaginationParams struct {
	Page   int // Page number from user request (default: 1)
	Limit  int // Limit per page from user request (default: 10)
	Offset int // Calculated offset (page - 1) * limit
}

// ParsePaginationParams parses basic pagination parameters (page, limit only)
func ParsePaginationParams(c *gin.Context) PaginationParams {
	pageStr := c.DefaultQuery(QueryParamPage, DefaultPage)
	limitStr := c.DefaultQuery(QueryParamLimit, DefaultLimit)

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < MinPage {
		page = MinPage
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// PageTotal returns how many pages of size limit cover total rows
func PageTotal(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Response Format Functions
//
// Every body leaving the API has the same envelope:
// {statusCode, data, message, success}

func BuildResponse(statusCode int, data any, message string) map[string]any {
	return map[string]any{
		ResponseFieldStatusCode: statusCode,
		ResponseFieldData:       data,
		ResponseFieldMessage:    message,
		ResponseFieldSuccess:    statusCode < 400,
	}
}

func BuildSuccessResponse(statusCode int, data any, message string) map[string]any {
	return BuildResponse(statusCode, data, message)
}

func BuildListResponse(statusCode int, items any, total int64, pagination PaginationParams, message string) map[string]any {
	return BuildResponse(statusCode, map[string]any{
		ResponseFieldItems:     items,
		ResponseFieldTotal:     total,
		ResponseFieldPage:      pagination.Page,
		ResponseFieldLimit:     pagination.Limit,
		ResponseFieldPageTotal: PageTotal(total, pagination.Limit),
	}, message)
}

func BuildErrorResponse(statusCode int, message string, details any) map[string]any {
	response := BuildResponse(statusCode, nil, message)
	if details != nil {
		response[ResponseFieldErrors] = details
	}
	return response
}
