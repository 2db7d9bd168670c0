// Package sqlite provides SQLite implementations of repository interfaces.
package sqlite

import (
	"strings"

	"notify-svc/internal/domain/entity"
)

// ArchiveQueryBuilder builds WHERE clauses for archive history queries.
type ArchiveQueryBuilder struct{}

// NewArchiveQueryBuilder creates a new query builder instance.
func NewArchiveQueryBuilder() *ArchiveQueryBuilder {
	return &ArchiveQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause for an optional topic and an
// inclusive time range. Returns an empty clause when no condition applies.
func (qb *ArchiveQueryBuilder) BuildWhereClause(topic *string, r entity.TimeRange) (clause string, args []interface{}) {
	var conditions []string

	if topic != nil {
		conditions = append(conditions, "topic = ?")
		args = append(args, *topic)
	}
	if r.From != nil {
		conditions = append(conditions, "time >= ?")
		args = append(args, *r.From)
	}
	if r.To != nil {
		conditions = append(conditions, "time <= ?")
		args = append(args, *r.To)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildPagination returns the LIMIT/OFFSET clause. SQLite requires a LIMIT
// before OFFSET, so an unbounded limit is expressed as -1.
func (qb *ArchiveQueryBuilder) BuildPagination(offset, limit int) (clause string, args []interface{}) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}
	return "LIMIT ? OFFSET ?", []interface{}{limit, offset}
}
