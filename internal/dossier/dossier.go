// Package dossier holds the faction record domain: lookups over the shared
// person/location sheet, the property reward log and the faction name cache
// backing autocomplete. All reads and writes go through the store adapter.
package dossier

import (
	"context"
	"strings"
	"time"

	"github.com/riskecrp/meridian-bot/internal/store"
)

type PropertyType string

const (
	TypeProperty  PropertyType = "Property"
	TypeWarehouse PropertyType = "Warehouse"
	TypeHQ        PropertyType = "HQ"
)

// Member is one character's merged dossier entry. A character may span
// several sheet rows, one per phone or address, which are unioned here.
type Member struct {
	Character string
	Phones    []string
	Addresses []string
	Leader    bool
}

type FactionInfo struct {
	Faction        string
	Members        []Member
	Headquarters   []string
	OtherAddresses []string
}

// PropertyRecord is one row of the property reward log. Row is the sheet row
// the record was read from, used to address in-place updates.
type PropertyRecord struct {
	Row             int
	DateGiven       string
	Faction         string
	Address         string
	Type            string
	Confiscated     bool
	DateConfiscated string
}

type Dossiers struct {
	store  store.Store
	schema Schema
	cache  *FactionCache
	now    func() time.Time
}

func NewDossiers(st store.Store, schema Schema, cache *FactionCache) *Dossiers {
	return &Dossiers{store: st, schema: schema, cache: cache, now: time.Now}
}

// LookupFaction resolves the full dossier of one faction in a single table
// read. Faction matching is case-insensitive and whitespace-trimmed. All
// result sections may be empty.
func (d *Dossiers) LookupFaction(ctx context.Context, name string) (FactionInfo, error) {
	faction := normalize(name)
	info := FactionInfo{Faction: strings.TrimSpace(name)}

	if faction == "" {
		return info, ErrMissingArgument
	}

	rows, errFetch := d.store.FetchTable(ctx, d.schema.dossierRange())
	if errFetch != nil {
		return info, errFetch
	}

	if len(rows) > 0 {
		rows = rows[1:]
	}

	info.Members = mergeMembers(rows, faction)
	info.Headquarters, info.OtherAddresses = partitionAddresses(rows, d.schema.locationOffset(), faction)

	return info, nil
}

// mergeMembers collects the person section rows of one faction, folding rows
// that share a character name into a single entry: phones and addresses are
// unioned and the leader flag is true if any row says so.
func mergeMembers(rows [][]string, faction string) []Member {
	var members []Member

	index := map[string]int{}

	for _, row := range rows {
		if normalize(cell(row, 0)) != faction {
			continue
		}

		character := strings.TrimSpace(cell(row, 1))
		if character == "" {
			character = "N/A"
		}

		key := strings.ToLower(character)
		at, found := index[key]
		if !found {
			members = append(members, Member{Character: character})
			at = len(members) - 1
			index[key] = at
		}

		member := &members[at]
		if phone := strings.TrimSpace(cell(row, 2)); phone != "" && !containsFold(member.Phones, phone) {
			member.Phones = append(member.Phones, phone)
		}

		if address := strings.TrimSpace(cell(row, 3)); address != "" && !containsFold(member.Addresses, address) {
			member.Addresses = append(member.Addresses, address)
		}

		member.Leader = member.Leader || isTrue(cell(row, 4))
	}

	return members
}

// partitionAddresses splits the location section rows of one faction into
// headquarters and ordinary addresses. Both lists are deduplicated and an
// address flagged as a headquarters never shows up on the ordinary list.
func partitionAddresses(rows [][]string, offset int, faction string) ([]string, []string) {
	var headquarters, others []string

	for _, row := range rows {
		if normalize(cell(row, offset)) != faction {
			continue
		}

		address := strings.TrimSpace(cell(row, offset+1))
		if address == "" {
			continue
		}

		if isTrue(cell(row, offset+2)) {
			if !containsFold(headquarters, address) {
				headquarters = append(headquarters, address)
			}
		} else if !containsFold(others, address) {
			others = append(others, address)
		}
	}

	var filtered []string
	for _, address := range others {
		if !containsFold(headquarters, address) {
			filtered = append(filtered, address)
		}
	}

	return headquarters, filtered
}

// ListProperties dumps the full property reward log in sheet order.
func (d *Dossiers) ListProperties(ctx context.Context) ([]PropertyRecord, error) {
	rows, errFetch := d.store.FetchTable(ctx, d.schema.rewardsRange())
	if errFetch != nil {
		return nil, errFetch
	}

	records := make([]PropertyRecord, 0, len(rows))

	for index, row := range rows {
		if len(row) == 0 {
			continue
		}

		records = append(records, PropertyRecord{
			Row:             index + 2,
			DateGiven:       strings.TrimSpace(cell(row, 0)),
			Faction:         strings.TrimSpace(cell(row, 1)),
			Address:         strings.TrimSpace(cell(row, 2)),
			Type:            strings.TrimSpace(cell(row, 3)),
			Confiscated:     isTrue(cell(row, 4)),
			DateConfiscated: strings.TrimSpace(cell(row, 5)),
		})
	}

	return records, nil
}

func (d *Dossiers) invalidateNames() {
	if d.cache != nil {
		d.cache.Invalidate()
	}
}
