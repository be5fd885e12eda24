package module

import (
	"time"

	"paydash/internal/core/query"
	"paydash/internal/platform/config"
	reportsvc "paydash/internal/services/api/reports/service"
)

// Empty category policies accepted by EMPTY_CATEGORY
const (
	EmptyCategoryFailOpen  = "fail_open"
	EmptyCategoryMatchNone = "match_none"
)

// FromConfig reads the report tuning keys from the service config (CORE_API_*)
func FromConfig(cfg config.Conf) reportsvc.Options {
	policy := cfg.MayEnum("EMPTY_CATEGORY", EmptyCategoryFailOpen, EmptyCategoryFailOpen, EmptyCategoryMatchNone)
	return reportsvc.Options{
		QueryTimeout:  cfg.MayDuration("QUERY_TIMEOUT", 15*time.Second),
		Parallelism:   cfg.MayIntAtLeast("OPTIONS_PARALLELISM", 0, 0),
		CacheTTL:      cfg.MayDuration("OPTIONS_CACHE_TTL", 0),
		EmptyCategory: query.ParseEmptyCategoryPolicy(policy),
		Strict:        cfg.MayBool("STRICT_FILTERS", false),
		MaxPageSize:   cfg.MayIntAtLeast("MAX_PAGE_SIZE", 0, 0),
	}
}
