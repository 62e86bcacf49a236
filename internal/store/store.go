// Package store adapts the external spreadsheet backend into the narrow set
// of typed operations the rest of the bot is allowed to use. All durability
// and scaling concerns belong to the backend, not this package.
package store

import (
	"context"
	"errors"
)

var (
	ErrRemoteCall  = errors.New("record store request failed")
	ErrCredentials = errors.New("failed to load record store credentials")
	ErrBadRange    = errors.New("invalid range spec")
)

// Store is the record store contract. Implementations are expected to treat a
// rangeSpec as A1 notation (`Sheet1!A2:E999`) and rows as left-aligned cell
// values where absent cells are empty strings.
type Store interface {
	// FetchTable reads a rectangular range as rows of strings. Trailing empty
	// rows are not included.
	FetchTable(ctx context.Context, rangeSpec string) ([][]string, error)
	// AppendRow appends one row after the last populated row of the range.
	AppendRow(ctx context.Context, rangeSpec string, row []string) error
	// UpdateRow overwrites the cells of a single row range in place.
	UpdateRow(ctx context.Context, rangeSpec string, row []string) error
	// NextEmptyRow returns the row index one past the last non-empty row of a
	// single column range. Ranges written one column section at a time can
	// desynchronize this value across sections, which is why each logical
	// table tracks its own primary column.
	NextEmptyRow(ctx context.Context, columnRange string) (int, error)
}
