// validator.go — Checks on card identifiers that the schema cannot express.
package template

import "fmt"

// CheckIDs returns an error if any card identifier is used more than once.
func CheckIDs(cards []Card) error {
	seen := make(map[string]int, len(cards))
	for i, c := range cards {
		if j, ok := seen[c.ID]; ok {
			return fmt.Errorf("duplicate card id %q at cards %d and %d", c.ID, j, i)
		}
		seen[c.ID] = i
	}
	return nil
}

// UnknownIDs returns warnings (never fatal errors) for requested card
// identifiers that are not present in cards.
func UnknownIDs(cards []Card, ids []string) []string {
	known := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		known[c.ID] = struct{}{}
	}

	var warnings []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			warnings = append(warnings, fmt.Sprintf("unknown card id %q — ignored", id))
		}
	}
	return warnings
}
