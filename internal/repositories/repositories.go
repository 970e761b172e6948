package repositories

import (
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
)

var SqBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var ErrBadQuery = errors.New("bad query")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains builds an ILIKE pattern matching s anywhere in a column.
func Contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// OrderColumn returns column if it is one of allowed, otherwise fallback.
func OrderColumn(column string, fallback string, allowed ...string) string {
	for _, a := range allowed {
		if column == a {
			return column
		}
	}
	return fallback
}

// Direction renders the sort direction keyword.
func Direction(ascending bool) string {
	if ascending {
		return "ASC"
	}
	return "DESC"
}
