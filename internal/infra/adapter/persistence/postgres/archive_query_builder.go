// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"notify-svc/internal/domain/entity"
)

// ArchiveQueryBuilder builds WHERE clauses for archive history queries
// using PostgreSQL positional placeholders.
type ArchiveQueryBuilder struct{}

// NewArchiveQueryBuilder creates a new query builder instance.
func NewArchiveQueryBuilder() *ArchiveQueryBuilder {
	return &ArchiveQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause for an optional topic and an
// inclusive time range. Placeholders are numbered from $1.
func (qb *ArchiveQueryBuilder) BuildWhereClause(topic *string, r entity.TimeRange) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if topic != nil {
		conditions = append(conditions, fmt.Sprintf("topic = $%d", paramIndex))
		args = append(args, *topic)
		paramIndex++
	}
	if r.From != nil {
		conditions = append(conditions, fmt.Sprintf("time >= $%d", paramIndex))
		args = append(args, *r.From)
		paramIndex++
	}
	if r.To != nil {
		conditions = append(conditions, fmt.Sprintf("time <= $%d", paramIndex))
		args = append(args, *r.To)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildPagination returns the LIMIT/OFFSET clause continuing the placeholder
// numbering after nextParam-1. A non-positive limit omits LIMIT entirely.
func (qb *ArchiveQueryBuilder) BuildPagination(nextParam, offset, limit int) (clause string, args []interface{}) {
	var parts []string
	if limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT $%d", nextParam))
		args = append(args, limit)
		nextParam++
	}
	if offset > 0 {
		parts = append(parts, fmt.Sprintf("OFFSET $%d", nextParam))
		args = append(args, offset)
	}
	return strings.Join(parts, " "), args
}
