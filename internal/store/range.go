package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var rangePattern = regexp.MustCompile(`^([^!]+)!([A-Z]+)([0-9]*)(?::([A-Z]+)([0-9]*))?$`)

// ColumnIndex converts a column letter to its zero based index, A=0, Z=25,
// AA=26 and so on.
func ColumnIndex(column string) int {
	index := 0
	for _, r := range column {
		index = index*26 + int(r-'A') + 1
	}

	return index - 1
}

// SpanStart returns the first column letter of a span like "F:H".
func SpanStart(span string) string {
	start, _, _ := strings.Cut(span, ":")

	return start
}

// SpanEnd returns the last column letter of a span like "F:H".
func SpanEnd(span string) string {
	start, end, found := strings.Cut(span, ":")
	if !found {
		return start
	}

	return end
}

// SpanWidth returns the number of columns covered by a span.
func SpanWidth(span string) int {
	return ColumnIndex(SpanEnd(span)) - ColumnIndex(SpanStart(span)) + 1
}

// Range builds an A1 range spec over the given column span and row window.
func Range(sheet string, span string, firstRow int, lastRow int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", sheet, SpanStart(span), firstRow, SpanEnd(span), lastRow)
}

// RowRange builds an A1 range spec addressing a single row of a column span.
func RowRange(sheet string, span string, row int) string {
	return Range(sheet, span, row, row)
}

// ColumnRange builds an A1 range spec over a single column.
func ColumnRange(sheet string, column string, firstRow int, lastRow int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", sheet, column, firstRow, column, lastRow)
}

// OpenRange builds an A1 range spec with a row-unbounded tail, the form the
// backend expects for ranged appends ("Sheet1!F2:H").
func OpenRange(sheet string, span string, firstRow int) string {
	return fmt.Sprintf("%s!%s%d:%s", sheet, SpanStart(span), firstRow, SpanEnd(span))
}

type parsedRange struct {
	sheet    string
	startCol int
	startRow int
	endCol   int
	// endRow is 0 for row-unbounded ranges.
	endRow int
}

func parseRange(rangeSpec string) (parsedRange, error) {
	match := rangePattern.FindStringSubmatch(rangeSpec)
	if match == nil {
		return parsedRange{}, fmt.Errorf("%w: %s", ErrBadRange, rangeSpec)
	}

	parsed := parsedRange{
		sheet:    match[1],
		startCol: ColumnIndex(match[2]),
		startRow: 1,
		endCol:   ColumnIndex(match[2]),
	}

	if match[3] != "" {
		parsed.startRow, _ = strconv.Atoi(match[3])
	}

	if match[4] != "" {
		parsed.endCol = ColumnIndex(match[4])
	}

	if match[5] != "" {
		parsed.endRow, _ = strconv.Atoi(match[5])
	}

	return parsed, nil
}
