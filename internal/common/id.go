package common

import "strings"

// ParseID splits an impresso content item id of the form
// "<collection>-<year>-<month>-<day>-<edition>-i<seq>" into its collection
// acronym and publication year (spec.md §3: "publication year (derived
// from id)").
func ParseID(id string) (collection, year string) {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return id, ""
	}
	return parts[0], parts[1]
}
