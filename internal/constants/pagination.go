package constants

// Pagination Query Parameters
const (
	QueryParamPage     = "page"
	QueryParamLimit    = "limit"
	QueryParamQuery    = "query"
	QueryParamSortBy   = "sortBy"
	QueryParamSortType = "sortType"
	QueryParamUserID   = "userId"
)

// Default Pagination Values (as strings for query parsing)
const (
	DefaultPage     = "1"
	DefaultLimit    = "10"
	DefaultSortBy   = "created_at"
	DefaultSortType = OrderDesc
)

// Pagination Limits
const (
	MinPage  = 1
	MinLimit = 1
	MaxLimit = 100
)

// Sort Orders
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)
