package dossier

import "strings"

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}

	return row[index]
}

// isTrue matches the sheet's boolean serialization, the literal TRUE in any
// casing. Everything else, including an absent cell, is false.
func isTrue(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "TRUE")
}

func flag(value bool) string {
	if value {
		return "TRUE"
	}

	return ""
}

func containsFold(values []string, lookup string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(lookup)) {
			return true
		}
	}

	return false
}
