package db

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"room-inventory/pkg/types"
)

// ApplyListParams adds filter, sort and pagination clauses for the fields present in allowedMap.
// allowedMap maps the public field name onto the qualified column.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	for _, jsonField := range sortedKeys(filter.Filter) {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		val := filter.Filter[jsonField]
		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: strings.Split(s, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}

	for _, jsonField := range sortedKeys(filter.Sort) {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if strings.ToLower(filter.Sort[jsonField]) == "desc" {
			sqlDir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			builder = builder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	return builder
}

// ApplySearch adds a case-insensitive OR match of search over columns.
func ApplySearch(builder sq.SelectBuilder, search string, columns ...string) sq.SelectBuilder {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return builder
	}
	pattern := "%" + search + "%"
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.ILike{col: pattern})
	}
	return builder.Where(or)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
