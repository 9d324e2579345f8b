package constants

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Statistics windows and list caps
const (
	RecentWindowDays    = 7
	RecentUpdatedLimit  = 5
	TopTagsLimit        = 5
	HistoryPreviewLimit = 5
	RelatedTodosLimit   = 5
)
