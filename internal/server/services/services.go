// Package services holds the shop's use cases. Each service opens
// repositories through a repomanager.RepositoryManager on the shared
// *sql.DB, or on a transaction when several writes must land together.
package services

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// page normalises skip/limit query values: negatives become zero and the
// limit defaults to DefaultLimit and is capped at MaxLimit.
func page(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}
