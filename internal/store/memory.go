package store

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store used by tests. It models each sheet as a
// sparse grid of cells and mimics the backend's ranged append behaviour,
// placing a new row one past the last populated row inside the range's
// column window.
type MemStore struct {
	mu     sync.Mutex
	sheets map[string][][]string

	Fetches int
	Appends int
	Updates int

	// AppendErrs is consumed one entry per AppendRow call. A nil entry lets
	// the call through, a non-nil entry fails it. Used to exercise partial
	// write paths.
	AppendErrs []error
}

func NewMemStore() *MemStore {
	return &MemStore{sheets: map[string][][]string{}}
}

// Seed replaces the full contents of one sheet. Row zero is sheet row one.
func (m *MemStore) Seed(sheet string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	grid := make([][]string, len(rows))
	for index, row := range rows {
		grid[index] = append([]string(nil), row...)
	}

	m.sheets[sheet] = grid
}

// Rows returns a copy of the raw grid of one sheet.
func (m *MemStore) Rows(sheet string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	grid := m.sheets[sheet]
	rows := make([][]string, len(grid))
	for index, row := range grid {
		rows[index] = append([]string(nil), row...)
	}

	return rows
}

func (m *MemStore) FetchTable(_ context.Context, rangeSpec string) ([][]string, error) {
	parsed, errParse := parseRange(rangeSpec)
	if errParse != nil {
		return nil, errParse
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Fetches++

	var rows [][]string

	lastPopulated := -1
	for row := parsed.startRow; parsed.endRow == 0 || row <= parsed.endRow; row++ {
		if row > len(m.sheets[parsed.sheet]) {
			break
		}

		window := m.window(parsed, row)
		rows = append(rows, window)
		if len(window) > 0 {
			lastPopulated = len(rows) - 1
		}
	}

	return rows[:lastPopulated+1], nil
}

func (m *MemStore) AppendRow(_ context.Context, rangeSpec string, row []string) error {
	parsed, errParse := parseRange(rangeSpec)
	if errParse != nil {
		return errParse
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.AppendErrs) > 0 {
		failure := m.AppendErrs[0]
		m.AppendErrs = m.AppendErrs[1:]

		if failure != nil {
			return failure
		}
	}

	m.Appends++

	target := parsed.startRow
	for sheetRow := parsed.startRow; sheetRow <= len(m.sheets[parsed.sheet]); sheetRow++ {
		if parsed.endRow != 0 && sheetRow > parsed.endRow {
			break
		}

		if len(m.window(parsed, sheetRow)) > 0 {
			target = sheetRow + 1
		}
	}

	m.writeRow(parsed, target, row)

	return nil
}

func (m *MemStore) UpdateRow(_ context.Context, rangeSpec string, row []string) error {
	parsed, errParse := parseRange(rangeSpec)
	if errParse != nil {
		return errParse
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Updates++
	m.writeRow(parsed, parsed.startRow, row)

	return nil
}

func (m *MemStore) NextEmptyRow(ctx context.Context, columnRange string) (int, error) {
	parsed, errParse := parseRange(columnRange)
	if errParse != nil {
		return 0, errParse
	}

	rows, errFetch := m.FetchTable(ctx, columnRange)
	if errFetch != nil {
		return 0, errFetch
	}

	return nextEmptyRow(parsed.startRow, rows), nil
}

// window returns the non padded cell window of one sheet row, trailing empty
// cells stripped, or an empty slice when every cell in the window is empty.
func (m *MemStore) window(parsed parsedRange, sheetRow int) []string {
	grid := m.sheets[parsed.sheet]
	if sheetRow < 1 || sheetRow > len(grid) {
		return nil
	}

	row := grid[sheetRow-1]

	var window []string
	for col := parsed.startCol; col <= parsed.endCol; col++ {
		cell := ""
		if col < len(row) {
			cell = row[col]
		}

		window = append(window, cell)
	}

	last := -1
	for index, cell := range window {
		if cell != "" {
			last = index
		}
	}

	return window[:last+1]
}

func (m *MemStore) writeRow(parsed parsedRange, sheetRow int, row []string) {
	grid := m.sheets[parsed.sheet]
	for len(grid) < sheetRow {
		grid = append(grid, nil)
	}

	cells := grid[sheetRow-1]
	for offset, value := range row {
		col := parsed.startCol + offset
		for len(cells) <= col {
			cells = append(cells, "")
		}

		cells[col] = value
	}

	grid[sheetRow-1] = cells
	m.sheets[parsed.sheet] = grid
}
