package dossier

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AddProperty records a granted property in the reward log and mirrors it
// into the location section of the dossier sheet. The duplicate check and the
// two appends are three separate remote calls with no atomicity between
// them: a failure after the first append leaves the reward log ahead of the
// location table and is reported without rollback.
func (d *Dossiers) AddProperty(ctx context.Context, dateGiven string, faction string, address string,
	propertyType PropertyType, confiscated bool,
) error {
	if !datePattern.MatchString(dateGiven) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, dateGiven)
	}

	if normalize(faction) == "" || normalize(address) == "" {
		return ErrMissingArgument
	}

	exists, errExists := d.locationExists(ctx, faction, address)
	if errExists != nil {
		return errExists
	}

	if exists {
		return ErrDuplicateProperty
	}

	rewardRow := []string{
		strings.TrimSpace(dateGiven),
		strings.TrimSpace(faction),
		strings.TrimSpace(address),
		string(propertyType),
		flag(confiscated),
		"",
	}
	if errAppend := d.store.AppendRow(ctx, d.schema.rewardsAppendRange(), rewardRow); errAppend != nil {
		return errAppend
	}

	locationRow := []string{
		strings.TrimSpace(faction),
		strings.TrimSpace(address),
		flag(propertyType == TypeHQ),
	}
	if errAppend := d.store.AppendRow(ctx, d.schema.locationAppendRange(), locationRow); errAppend != nil {
		return errAppend
	}

	d.invalidateNames()

	return nil
}

// AddPerson appends one dossier row for a character. There is deliberately no
// duplicate check: a character may span several rows and lookups merge them.
func (d *Dossiers) AddPerson(ctx context.Context, faction string, character string, phone string,
	personalAddress string, leader bool,
) error {
	if normalize(faction) == "" || normalize(character) == "" {
		return ErrMissingArgument
	}

	row, errRow := d.store.NextEmptyRow(ctx, d.schema.personColumnRange())
	if errRow != nil {
		return errRow
	}

	personRow := []string{
		strings.TrimSpace(faction),
		strings.TrimSpace(character),
		strings.TrimSpace(phone),
		strings.TrimSpace(personalAddress),
		flag(leader),
	}
	if errUpdate := d.store.UpdateRow(ctx, d.schema.personRowRange(row), personRow); errUpdate != nil {
		return errUpdate
	}

	d.invalidateNames()

	return nil
}

// AddLocation appends one row to the location section, no duplicate check.
func (d *Dossiers) AddLocation(ctx context.Context, faction string, address string, isHQ bool) error {
	if normalize(faction) == "" || normalize(address) == "" {
		return ErrMissingArgument
	}

	row, errRow := d.store.NextEmptyRow(ctx, d.schema.locationColumnRange())
	if errRow != nil {
		return errRow
	}

	locationRow := []string{
		strings.TrimSpace(faction),
		strings.TrimSpace(address),
		flag(isHQ),
	}
	if errUpdate := d.store.UpdateRow(ctx, d.schema.locationRowRange(row), locationRow); errUpdate != nil {
		return errUpdate
	}

	d.invalidateNames()

	return nil
}

type ConfiscateResult struct {
	// Confirmed is false when the caller did not confirm and nothing was
	// read or written.
	Confirmed bool
	Record    PropertyRecord
}

// ConfiscateProperty marks the most recent reward row matching the faction
// and address as confiscated, in place, preserving every other field. When
// several rows match, the one with the latest parseable grant date wins;
// ties, including rows with unparseable dates, fall to the later sheet row.
// At most one row is mutated per call.
func (d *Dossiers) ConfiscateProperty(ctx context.Context, faction string, address string, confirm bool) (ConfiscateResult, error) {
	if !confirm {
		return ConfiscateResult{Confirmed: false}, nil
	}

	records, errList := d.ListProperties(ctx)
	if errList != nil {
		return ConfiscateResult{}, errList
	}

	var (
		match *PropertyRecord
		best  time.Time
	)

	for index := range records {
		record := &records[index]
		if normalize(record.Faction) != normalize(faction) || normalize(record.Address) != normalize(address) {
			continue
		}

		given, errParse := time.Parse(dateLayout, record.DateGiven)

		switch {
		case match == nil:
			match = record
			if errParse == nil {
				best = given
			}
		case errParse == nil && (best.IsZero() || !given.Before(best)):
			match = record
			best = given
		case errParse != nil && best.IsZero():
			// Neither date parses, later row wins.
			match = record
		}
	}

	if match == nil {
		return ConfiscateResult{}, ErrNotFound
	}

	match.Confiscated = true
	match.DateConfiscated = d.now().Format(dateLayout)

	updated := []string{
		match.DateGiven,
		match.Faction,
		match.Address,
		match.Type,
		flag(true),
		match.DateConfiscated,
	}
	if errUpdate := d.store.UpdateRow(ctx, d.schema.rewardRowRange(match.Row), updated); errUpdate != nil {
		return ConfiscateResult{}, errUpdate
	}

	return ConfiscateResult{Confirmed: true, Record: *match}, nil
}

// locationExists reports whether the location section already holds this
// faction/address pair, compared case-insensitively.
func (d *Dossiers) locationExists(ctx context.Context, faction string, address string) (bool, error) {
	rows, errFetch := d.store.FetchTable(ctx, d.schema.dossierRange())
	if errFetch != nil {
		return false, errFetch
	}

	if len(rows) > 0 {
		rows = rows[1:]
	}

	offset := d.schema.locationOffset()

	for _, row := range rows {
		if normalize(cell(row, offset)) == normalize(faction) &&
			normalize(cell(row, offset+1)) == normalize(address) {
			return true, nil
		}
	}

	return false, nil
}
