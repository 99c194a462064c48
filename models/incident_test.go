package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullIntUnmarshalText(t *testing.T) {
	var n NullInt

	require.NoError(t, n.UnmarshalText([]byte("1997")))
	assert.True(t, n.Valid)
	assert.Equal(t, 1997, n.Value)

	require.NoError(t, n.UnmarshalText([]byte("")))
	assert.False(t, n.Valid)

	// Non-numeric cells become null rather than failing the row.
	require.NoError(t, n.UnmarshalText([]byte("Unknown")))
	assert.False(t, n.Valid)
	assert.Equal(t, 0, n.Value)

	require.NoError(t, n.UnmarshalText([]byte("  12 ")))
	assert.True(t, n.Valid)
	assert.Equal(t, 12, n.Value)
}

func TestNullIntMarshalText(t *testing.T) {
	out, err := NullInt{Value: 7, Valid: true}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "7", string(out))

	out, err = NullInt{}.MarshalText()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func testTable() *IncidentTable {
	return &IncidentTable{
		Columns: []string{"Country Code", "Latitude", "Longitude", "City"},
		Rows: [][]string{
			{"CO", "4.5", "-74.2", "Bogota"},
			{"PS", "31.5", "34.4", "Gaza"},
		},
		Incidents: []Incident{
			{CountryCode: "CO"},
			{CountryCode: "PS"},
		},
	}
}

func TestColumnIndex(t *testing.T) {
	table := testTable()
	assert.Equal(t, 0, table.ColumnIndex("Country Code"))
	assert.Equal(t, 3, table.ColumnIndex("City"))
	assert.Equal(t, -1, table.ColumnIndex("Nope"))
}

func TestCopyIsIndependent(t *testing.T) {
	table := testTable()
	cp := table.Copy()
	cp.Rows[0][3] = "elsewhere"
	cp.Columns[0] = "renamed"

	assert.Equal(t, "Bogota", table.Rows[0][3])
	assert.Equal(t, "Country Code", table.Columns[0])
}

func TestDropColumns(t *testing.T) {
	table := testTable()
	table.DropColumns("Latitude", "Longitude", "City")

	assert.Equal(t, []string{"Country Code"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"CO"}, table.Rows[0])
	assert.Equal(t, []string{"PS"}, table.Rows[1])
}

func TestDropColumnsIgnoresUnknownNames(t *testing.T) {
	table := testTable()
	table.DropColumns("Altitude")
	assert.Len(t, table.Columns, 4)
	assert.Equal(t, []string{"CO", "4.5", "-74.2", "Bogota"}, table.Rows[0])
}
