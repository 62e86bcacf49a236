package dossier

import (
	"fmt"

	"github.com/riskecrp/meridian-bot/internal/store"
)

const (
	personColumnCount   = 5
	locationColumnCount = 3
	rewardColumnCount   = 6
)

// Schema pins down where the three logical tables live inside the backing
// spreadsheet. The person and location tables share rows on one sheet but are
// semantically independent column sections; the exact spans are deployment
// configuration, not a contract.
type Schema struct {
	DossierSheet    string
	RewardsSheet    string
	PersonColumns   string
	LocationColumns string
	RewardColumns   string
	MaxRows         int
}

func (s Schema) Validate() error {
	for span, want := range map[string]int{
		s.PersonColumns:   personColumnCount,
		s.LocationColumns: locationColumnCount,
		s.RewardColumns:   rewardColumnCount,
	} {
		if got := store.SpanWidth(span); got != want {
			return fmt.Errorf("%w: %s spans %d columns, want %d", ErrSchemaColumns, span, got, want)
		}
	}

	return nil
}

// dossierRange covers both row sections of the dossier sheet in one read,
// header row included.
func (s Schema) dossierRange() string {
	span := store.SpanStart(s.PersonColumns) + ":" + store.SpanEnd(s.LocationColumns)

	return store.Range(s.DossierSheet, span, 1, s.MaxRows)
}

// locationOffset is the index of the location section's first cell within a
// dossierRange row.
func (s Schema) locationOffset() int {
	return store.ColumnIndex(store.SpanStart(s.LocationColumns)) - store.ColumnIndex(store.SpanStart(s.PersonColumns))
}

func (s Schema) personColumnRange() string {
	return store.ColumnRange(s.DossierSheet, store.SpanStart(s.PersonColumns), 1, s.MaxRows)
}

func (s Schema) personRowRange(row int) string {
	return store.RowRange(s.DossierSheet, s.PersonColumns, row)
}

func (s Schema) locationColumnRange() string {
	return store.ColumnRange(s.DossierSheet, store.SpanStart(s.LocationColumns), 1, s.MaxRows)
}

func (s Schema) locationRowRange(row int) string {
	return store.RowRange(s.DossierSheet, s.LocationColumns, row)
}

func (s Schema) locationAppendRange() string {
	return store.OpenRange(s.DossierSheet, s.LocationColumns, 2)
}

// rewardsRange skips the header row so a fetched index maps directly onto a
// sheet row.
func (s Schema) rewardsRange() string {
	return store.Range(s.RewardsSheet, s.RewardColumns, 2, s.MaxRows)
}

func (s Schema) rewardRowRange(row int) string {
	return store.RowRange(s.RewardsSheet, s.RewardColumns, row)
}

func (s Schema) rewardsAppendRange() string {
	return store.OpenRange(s.RewardsSheet, s.RewardColumns, 2)
}
