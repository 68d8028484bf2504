package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	sql, args, err := Select("id", "name").
		From("venue").
		Where(Eq("externalid", int64(556)), IsNull("city")).
		OrderBy("id ASC").
		Limit(5).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM venue WHERE externalid = $1 AND city IS NULL ORDER BY id ASC LIMIT 5", sql)
	assert.Equal(t, []any{int64(556)}, args)
}

func TestSelectBuilderInCondition(t *testing.T) {
	sql, args, err := Select("id").
		From("event").
		Where(Eq("fixtureid", int64(9)), In("eventtypeid", []any{int64(1), int64(2)})).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM event WHERE fixtureid = $1 AND eventtypeid IN ($2, $3)", sql)
	assert.Equal(t, []any{int64(9), int64(1), int64(2)}, args)
}

func TestSelectBuilderEmptyIn(t *testing.T) {
	sql, args, err := Select("id").From("event").Where(In("eventtypeid", nil)).ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM event WHERE 1=0", sql)
	assert.Empty(t, args)
}

func TestSelectBuilderExpr(t *testing.T) {
	sql, args, err := Select("id").
		From("referee").
		Where(Expr("LOWER(TRIM(CONCAT_WS(' ', firstname, lastname))) = ?", "john smith")).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM referee WHERE LOWER(TRIM(CONCAT_WS(' ', firstname, lastname))) = $1", sql)
	assert.Equal(t, []any{"john smith"}, args)
}

func TestSelectBuilderValidation(t *testing.T) {
	_, _, err := Select().From("venue").ToSQL()
	assert.Error(t, err)

	_, _, err = Select("id").ToSQL()
	assert.Error(t, err)
}

func TestInsertBuilderWithSuffix(t *testing.T) {
	sql, args, err := InsertInto("team").
		Columns("externalid", "name").
		Values(int64(33), "Manchester United").
		Suffix("ON CONFLICT (externalid) DO NOTHING RETURNING id").
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO team (externalid, name) VALUES ($1, $2) ON CONFLICT (externalid) DO NOTHING RETURNING id", sql)
	assert.Equal(t, []any{int64(33), "Manchester United"}, args)
}

func TestInsertBuilderMultiRow(t *testing.T) {
	sql, args, err := InsertInto("country").
		Columns("code", "name").
		Values("GB-ENG", "England").
		Values("IE", "Ireland").
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO country (code, name) VALUES ($1, $2), ($3, $4)", sql)
	assert.Equal(t, []any{"GB-ENG", "England", "IE", "Ireland"}, args)
}

func TestInsertBuilderRowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("country").
		Columns("code", "name").
		Values("IE").
		ToSQL()
	assert.Error(t, err)
}

func TestUpdateBuilder(t *testing.T) {
	sql, args, err := Update("playerstatistics").
		Set("substitute", true).
		Where(Eq("fixtureid", int64(9)), Eq("playerid", int64(71))).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE playerstatistics SET substitute = $1 WHERE fixtureid = $2 AND playerid = $3", sql)
	assert.Equal(t, []any{true, int64(9), int64(71)}, args)
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ExternalID int64   `db:"externalid"`
		Name       string  `db:"name"`
		City       *string `db:"city"`
		Ignored    string  `db:"-"`
		untagged   string
	}
	_ = row{untagged: ""}.untagged

	sql, args, err := InsertModel("venue", row{ExternalID: 556, Name: "Old Trafford"}, "RETURNING id")

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO venue (externalid, name, city) VALUES ($1, $2, $3) RETURNING id", sql)
	require.Len(t, args, 3)
	assert.Equal(t, int64(556), args[0])
	assert.Equal(t, "Old Trafford", args[1])
	assert.Nil(t, args[2])
}

func TestInsertModelRejectsNonStruct(t *testing.T) {
	_, _, err := InsertModel("venue", 42, "")
	assert.Error(t, err)

	var nilRow *struct {
		ID int64 `db:"id"`
	}
	_, _, err = InsertModel("venue", nilRow, "")
	assert.Error(t, err)
}
