package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedDossierSheet(mem *MemStore) {
	mem.Seed("Sheet1", [][]string{
		{"Faction", "Character", "Phone", "Address", "Leader", "Faction", "Address", "HQ"},
		{"Ballas", "Jane Doe", "555-1234", "12 Grove St", "TRUE", "Ballas", "Grove Street 12", "TRUE"},
		{"Ballas", "Pedro", "", "", "", "Ballas", "Forum Drive 3", ""},
		{"Vagos", "Flash", "", "", ""},
	})
}

func TestMemStoreFetchTrimsTrailing(t *testing.T) {
	mem := NewMemStore()
	seedDossierSheet(mem)

	rows, errFetch := mem.FetchTable(context.Background(), "Sheet1!A1:H999")
	require.NoError(t, errFetch)
	require.Len(t, rows, 4)
	require.Equal(t, []string{"Vagos", "Flash"}, rows[3])

	// The location window ends at the last row that has location cells.
	locations, errLoc := mem.FetchTable(context.Background(), "Sheet1!F1:H999")
	require.NoError(t, errLoc)
	require.Len(t, locations, 3)
	require.Equal(t, []string{"Ballas", "Forum Drive 3"}, locations[2])
}

func TestMemStoreAppendUsesColumnWindow(t *testing.T) {
	mem := NewMemStore()
	seedDossierSheet(mem)

	// The person section runs three data rows deep, the location section two.
	// An append scoped to the location columns lands right after the last
	// populated location row, not after the last person row.
	errAppend := mem.AppendRow(context.Background(), "Sheet1!F2:H", []string{"Vagos", "Jamestown 4", "TRUE"})
	require.NoError(t, errAppend)

	rows := mem.Rows("Sheet1")
	require.Equal(t, "Vagos", rows[3][5])
	require.Equal(t, "Jamestown 4", rows[3][6])
	require.Equal(t, "TRUE", rows[3][7])
	// The pre-existing person cells on that row are untouched.
	require.Equal(t, "Vagos", rows[3][0])
	require.Equal(t, "Flash", rows[3][1])
}

func TestMemStoreUpdateRow(t *testing.T) {
	mem := NewMemStore()
	seedDossierSheet(mem)

	errUpdate := mem.UpdateRow(context.Background(), "Sheet1!A5:E5",
		[]string{"Vagos", "Little Devil", "555-0000", "", ""})
	require.NoError(t, errUpdate)

	rows := mem.Rows("Sheet1")
	require.Equal(t, "Little Devil", rows[4][1])
	require.Equal(t, 1, mem.Updates)
}

func TestMemStoreNextEmptyRow(t *testing.T) {
	mem := NewMemStore()
	seedDossierSheet(mem)

	next, errNext := mem.NextEmptyRow(context.Background(), "Sheet1!A1:A999")
	require.NoError(t, errNext)
	require.Equal(t, 5, next)

	next, errNext = mem.NextEmptyRow(context.Background(), "Sheet1!F1:F999")
	require.NoError(t, errNext)
	require.Equal(t, 4, next)
}

func TestMemStoreAppendErrs(t *testing.T) {
	mem := NewMemStore()
	errBoom := errors.New("boom")
	mem.AppendErrs = []error{nil, errBoom}

	require.NoError(t, mem.AppendRow(context.Background(), "Sheet1!A2:E", []string{"first"}))
	require.ErrorIs(t, mem.AppendRow(context.Background(), "Sheet1!A2:E", []string{"second"}), errBoom)
	require.NoError(t, mem.AppendRow(context.Background(), "Sheet1!A2:E", []string{"third"}))
	require.Equal(t, 2, mem.Appends)
}
