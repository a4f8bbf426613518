package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertIgnoreSQL(t *testing.T) {
	sql, err := InsertIgnoreSQL(InsertConfig{
		Table:   "floors",
		Columns: []string{"building_id", "floor_number"},
	})
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "floors" ("building_id", "floor_number") VALUES ($1, $2) ON CONFLICT DO NOTHING`, sql)
}

func TestInsertIgnoreSQL_ExprsAndReturning(t *testing.T) {
	sql, err := InsertIgnoreSQL(InsertConfig{
		Table:     "public.buildings",
		Columns:   []string{"name", "location"},
		Exprs:     map[string]string{"location": "ST_GeomFromEWKB(%s)"},
		Returning: []string{"id"},
	})
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "public"."buildings" ("name", "location") VALUES ($1, ST_GeomFromEWKB($2)) ON CONFLICT DO NOTHING RETURNING "id"`,
		sql)
}

func TestInsertIgnoreSQL_NoTable(t *testing.T) {
	_, err := InsertIgnoreSQL(InsertConfig{Columns: []string{"id"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no table specified")
}

func TestInsertIgnoreSQL_NoColumns(t *testing.T) {
	_, err := InsertIgnoreSQL(InsertConfig{Table: "floors"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns specified")
}

func TestMustInsertIgnoreSQL_Panics(t *testing.T) {
	assert.Panics(t, func() { MustInsertIgnoreSQL(InsertConfig{}) })
}

func TestSanitizeTable(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", `"simple"`},
		{"public.buildings", `"public"."buildings"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeTable(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestQuoteAndJoin(t *testing.T) {
	result := quoteAndJoin([]string{"id", "name", "value"})
	assert.Equal(t, `"id", "name", "value"`, result)
}

func TestConnect_EmptyConnString(t *testing.T) {
	_, err := Connect(t.Context(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no connection string")
}
