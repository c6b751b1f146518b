package db

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-inventory/pkg/types"
)

var itemColumns = map[string]string{
	"name":       "i.name",
	"quantity":   "i.quantity",
	"created_at": "i.created_at",
}

func TestApplyListParams(t *testing.T) {
	base := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("i.id").From("items i")

	filter := types.Filter{
		Filter:         map[string]interface{}{"name": "Chair,Desk", "unknown": "x"},
		Sort:           map[string]string{"quantity": "desc", "created_at": "asc"},
		Limit:          10,
		Offset:         20,
		WithPagination: true,
	}

	query, args, err := ApplyListParams(base, filter, itemColumns).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT i.id FROM items i WHERE i.name IN ($1,$2) ORDER BY i.created_at ASC, i.quantity DESC LIMIT 10 OFFSET 20", query)
	assert.Equal(t, []interface{}{"Chair", "Desk"}, args)
}

func TestApplyListParams_NoPagination(t *testing.T) {
	base := sq.Select("i.id").From("items i")

	query, _, err := ApplyListParams(base, types.Filter{Limit: 5}, itemColumns).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT i.id FROM items i", query)
}

func TestApplySearch(t *testing.T) {
	base := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select("i.id").From("items i")

	query, args, err := ApplySearch(base, " proj ", "i.name", "i.description").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT i.id FROM items i WHERE (i.name ILIKE $1 OR i.description ILIKE $2)", query)
	assert.Equal(t, []interface{}{"%proj%", "%proj%"}, args)

	unchanged, _, _ := ApplySearch(base, "   ", "i.name").ToSql()
	assert.Equal(t, "SELECT i.id FROM items i", unchanged)
}
