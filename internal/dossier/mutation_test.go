package dossier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskecrp/meridian-bot/internal/store"
	"github.com/stretchr/testify/require"
)

func TestAddPropertyInvalidDate(t *testing.T) {
	mem := store.NewMemStore()
	dossiers := NewDossiers(mem, testSchema(), nil)

	for _, date := range []string{"", "15-01-2024", "2024/01/15", "2024-1-5", "yesterday"} {
		errAdd := dossiers.AddProperty(context.Background(), date, "Ballas", "Grove Street 12", TypeProperty, false)
		require.ErrorIs(t, errAdd, ErrInvalidDate)
	}

	// Validation rejects before any remote traffic.
	require.Equal(t, 0, mem.Fetches)
	require.Equal(t, 0, mem.Appends)
}

func TestAddPropertyMissingArgument(t *testing.T) {
	mem := store.NewMemStore()
	dossiers := NewDossiers(mem, testSchema(), nil)

	errAdd := dossiers.AddProperty(context.Background(), "2024-01-15", "  ", "Grove Street 12", TypeProperty, false)
	require.ErrorIs(t, errAdd, ErrMissingArgument)

	errAdd = dossiers.AddProperty(context.Background(), "2024-01-15", "Ballas", "", TypeProperty, false)
	require.ErrorIs(t, errAdd, ErrMissingArgument)
	require.Equal(t, 0, mem.Appends)
}

func TestAddPropertyDuplicate(t *testing.T) {
	mem := store.NewMemStore()
	seedDossier(mem)
	dossiers := NewDossiers(mem, testSchema(), nil)

	errAdd := dossiers.AddProperty(context.Background(), "2024-01-15", " BALLAS", "grove street 12 ", TypeProperty, false)
	require.ErrorIs(t, errAdd, ErrDuplicateProperty)
	require.Equal(t, 0, mem.Appends)
}

func TestAddProperty(t *testing.T) {
	mem := store.NewMemStore()
	seedDossier(mem)
	mem.Seed("PropertyRewards", [][]string{
		{"Date", "Faction", "Address", "Type", "Confiscated", "Date Confiscated"},
		{"2024-01-15", "Ballas", "Grove Street 12", "Property", "", ""},
	})
	dossiers := NewDossiers(mem, testSchema(), nil)

	errAdd := dossiers.AddProperty(context.Background(), "2024-02-10", "Vagos", "El Burro Blvd 9", TypeWarehouse, false)
	require.NoError(t, errAdd)
	require.Equal(t, 2, mem.Appends)

	rewards := mem.Rows("PropertyRewards")
	require.Equal(t, []string{"2024-02-10", "Vagos", "El Burro Blvd 9", "Warehouse", "", ""}, rewards[2][:6])

	// The location mirror lands in the location section of the dossier sheet.
	locations := mem.Rows("Sheet1")
	last := locations[len(locations)-1]
	require.Equal(t, "Vagos", last[5])
	require.Equal(t, "El Burro Blvd 9", last[6])
	require.Equal(t, "", last[7])
}

func TestAddPropertyHQFlag(t *testing.T) {
	mem := store.NewMemStore()
	seedDossier(mem)
	dossiers := NewDossiers(mem, testSchema(), nil)

	errAdd := dossiers.AddProperty(context.Background(), "2024-02-10", "Vagos", "Covenant Ave 1", TypeHQ, true)
	require.NoError(t, errAdd)

	// Without a header the ranged append still starts at row two.
	rewards := mem.Rows("PropertyRewards")
	require.Equal(t, "TRUE", rewards[1][4])

	locations := mem.Rows("Sheet1")
	last := locations[len(locations)-1]
	require.Equal(t, "TRUE", last[7])
}

func TestAddPropertyPartialWrite(t *testing.T) {
	mem := store.NewMemStore()
	seedDossier(mem)
	dossiers := NewDossiers(mem, testSchema(), nil)

	errBoom := errors.New("quota exceeded")
	mem.AppendErrs = []error{nil, errBoom}

	errAdd := dossiers.AddProperty(context.Background(), "2024-02-10", "Vagos", "Covenant Ave 1", TypeProperty, false)
	require.ErrorIs(t, errAdd, errBoom)

	// The reward row survived the failed location mirror. There is no
	// rollback, the caller just gets the error.
	rewards := mem.Rows("PropertyRewards")
	require.Len(t, rewards, 2)
	require.Equal(t, "Covenant Ave 1", rewards[1][2])

	locations, errFetch := mem.FetchTable(context.Background(), "Sheet1!F1:H999")
	require.NoError(t, errFetch)
	for _, row := range locations {
		require.NotContains(t, row, "Covenant Ave 1")
	}
}

func TestAddPerson(t *testing.T) {
	mem := store.NewMemStore()
	seedDossier(mem)
	dossiers := NewDossiers(mem, testSchema(), nil)

	errAdd := dossiers.AddPerson(context.Background(), " Vagos ", " Little Devil ", "555-0101", "El Burro Blvd 9", true)
	require.NoError(t, errAdd)
	require.Equal(t, 1, mem.Updates)

	rows := mem.Rows("Sheet1")
	require.Equal(t, []string{"Vagos", "Little Devil", "555-0101", "El Burro Blvd 9", "TRUE"}, rows[5][:5])
}

func TestAddPersonMissingArgument(t *testing.T) {
	mem := store.NewMemStore()
	dossiers := NewDossiers(mem, testSchema(), nil)

	require.ErrorIs(t, dossiers.AddPerson(context.Background(), "", "Little Devil", "", "", false), ErrMissingArgument)
	require.ErrorIs(t, dossiers.AddPerson(context.Background(), "Vagos", "  ", "", "", false), ErrMissingArgument)
	require.Equal(t, 0, mem.Updates)
}

func TestAddLocation(t *testing.T) {
	mem := store.NewMemStore()
	seedDossier(mem)
	dossiers := NewDossiers(mem, testSchema(), nil)

	errAdd := dossiers.AddLocation(context.Background(), "Vagos", "El Burro Blvd 9", true)
	require.NoError(t, errAdd)

	rows := mem.Rows("Sheet1")
	require.Equal(t, "Vagos", rows[5][5])
	require.Equal(t, "El Burro Blvd 9", rows[5][6])
	require.Equal(t, "TRUE", rows[5][7])
}

func TestConfiscateNotConfirmed(t *testing.T) {
	mem := store.NewMemStore()
	dossiers := NewDossiers(mem, testSchema(), nil)

	result, errConfiscate := dossiers.ConfiscateProperty(context.Background(), "Ballas", "Grove Street 12", false)
	require.NoError(t, errConfiscate)
	require.False(t, result.Confirmed)

	// Declining is a pure no-op, not even a read goes out.
	require.Equal(t, 0, mem.Fetches)
	require.Equal(t, 0, mem.Updates)
}

func TestConfiscateNotFound(t *testing.T) {
	mem := store.NewMemStore()
	mem.Seed("PropertyRewards", [][]string{
		{"Date", "Faction", "Address", "Type", "Confiscated", "Date Confiscated"},
		{"2024-01-15", "Ballas", "Grove Street 12", "Property", "", ""},
	})
	dossiers := NewDossiers(mem, testSchema(), nil)

	_, errConfiscate := dossiers.ConfiscateProperty(context.Background(), "Ballas", "Forum Drive 3", true)
	require.ErrorIs(t, errConfiscate, ErrNotFound)
	require.Equal(t, 0, mem.Updates)
}

func TestConfiscateLatestDateWins(t *testing.T) {
	mem := store.NewMemStore()
	mem.Seed("PropertyRewards", [][]string{
		{"Date", "Faction", "Address", "Type", "Confiscated", "Date Confiscated"},
		{"2024-01-15", "Ballas", "Grove Street 12", "Property", "", ""},
		{"2024-03-01", "Ballas", "Grove Street 12", "Property", "", ""},
		{"2024-02-10", "Ballas", "Grove Street 12", "Property", "", ""},
	})

	dossiers := NewDossiers(mem, testSchema(), nil)
	dossiers.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	result, errConfiscate := dossiers.ConfiscateProperty(context.Background(), " ballas", "grove street 12 ", true)
	require.NoError(t, errConfiscate)
	require.True(t, result.Confirmed)
	require.Equal(t, 3, result.Record.Row)
	require.Equal(t, "2024-06-01", result.Record.DateConfiscated)

	// Exactly one row is mutated, the other matches keep their state.
	require.Equal(t, 1, mem.Updates)

	rows := mem.Rows("PropertyRewards")
	require.Equal(t, []string{"2024-03-01", "Ballas", "Grove Street 12", "Property", "TRUE", "2024-06-01"}, rows[2][:6])
	require.Equal(t, "", rows[1][4])
	require.Equal(t, "", rows[3][4])
}

func TestConfiscateDateTieLaterRowWins(t *testing.T) {
	mem := store.NewMemStore()
	mem.Seed("PropertyRewards", [][]string{
		{"Date", "Faction", "Address", "Type", "Confiscated", "Date Confiscated"},
		{"2024-02-10", "Ballas", "Grove Street 12", "Property", "", ""},
		{"2024-02-10", "Ballas", "Grove Street 12", "Warehouse", "", ""},
	})

	dossiers := NewDossiers(mem, testSchema(), nil)
	dossiers.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	result, errConfiscate := dossiers.ConfiscateProperty(context.Background(), "Ballas", "Grove Street 12", true)
	require.NoError(t, errConfiscate)
	require.Equal(t, 3, result.Record.Row)
	require.Equal(t, "Warehouse", result.Record.Type)
}

func TestConfiscateUnparseableDates(t *testing.T) {
	mem := store.NewMemStore()
	mem.Seed("PropertyRewards", [][]string{
		{"Date", "Faction", "Address", "Type", "Confiscated", "Date Confiscated"},
		{"sometime", "Ballas", "Grove Street 12", "Property", "", ""},
		{"last week", "Ballas", "Grove Street 12", "Property", "", ""},
	})

	dossiers := NewDossiers(mem, testSchema(), nil)
	dossiers.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	result, errConfiscate := dossiers.ConfiscateProperty(context.Background(), "Ballas", "Grove Street 12", true)
	require.NoError(t, errConfiscate)
	require.Equal(t, 3, result.Record.Row)

	// The parseable date still beats any unparseable one regardless of row
	// order.
	mem.Seed("PropertyRewards", [][]string{
		{"Date", "Faction", "Address", "Type", "Confiscated", "Date Confiscated"},
		{"2024-01-15", "Ballas", "Grove Street 12", "Property", "", ""},
		{"garbage", "Ballas", "Grove Street 12", "Property", "", ""},
	})

	result, errConfiscate = dossiers.ConfiscateProperty(context.Background(), "Ballas", "Grove Street 12", true)
	require.NoError(t, errConfiscate)
	require.Equal(t, 2, result.Record.Row)
}

func TestConfiscatePreservesFields(t *testing.T) {
	mem := store.NewMemStore()
	mem.Seed("PropertyRewards", [][]string{
		{"Date", "Faction", "Address", "Type", "Confiscated", "Date Confiscated"},
		{"2024-01-15", "Ballas", "Grove Street 12", "Warehouse", "", ""},
	})

	dossiers := NewDossiers(mem, testSchema(), nil)
	dossiers.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	_, errConfiscate := dossiers.ConfiscateProperty(context.Background(), "Ballas", "Grove Street 12", true)
	require.NoError(t, errConfiscate)

	rows := mem.Rows("PropertyRewards")
	require.Equal(t, []string{"2024-01-15", "Ballas", "Grove Street 12", "Warehouse", "TRUE", "2024-06-01"}, rows[1][:6])
}
