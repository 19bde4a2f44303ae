// Package symbol defines the priority-ranked markers used to denote Oracle
// option usage throughout the roll-up. The same priority order is applied at
// every aggregation level: evidence -> database -> VM -> host -> cluster.
package symbol

import "strings"

// Symbol is one of a fixed set of usage markers.
type Symbol string

const (
	// Used marks confirmed current usage of an option.
	Used Symbol = "+"
	// Historical marks usage detected in the past but not currently.
	Historical Symbol = "~"
	// Cloned marks usage inherited from a cloned database.
	Cloned Symbol = "#"
	// Verify marks usage that needs manual verification.
	Verify Symbol = "^"
	// None is the blank cell: no evidence, or evidence that resolved to
	// nothing. The corpus has no distinct "confirmed not used" result value,
	// so both states render blank.
	None Symbol = ""
)

var priorities = map[Symbol]int{
	Used:       4,
	Historical: 3,
	Cloned:     2,
	Verify:     1,
	None:       0,
}

var resultSymbols = map[string]Symbol{
	"used":       Used,
	"historical": Historical,
	"cloned":     Cloned,
	"verify":     Verify,
}

// Resolve maps a raw evidence result value to its symbol. Matching is
// case-insensitive and ignores surrounding whitespace. Unknown or empty
// values resolve to None; resolution never fails.
func Resolve(result string) Symbol {
	return resultSymbols[strings.ToLower(strings.TrimSpace(result))]
}

// Priority returns the merge rank of s. Anything outside the known set,
// including None, ranks 0.
func Priority(s Symbol) int {
	return priorities[s]
}

// Max returns the higher-priority of two symbols. On equal priority the
// first argument wins, which keeps merges order-independent in effect since
// equal priority implies the same symbol within the known set.
func Max(a, b Symbol) Symbol {
	if Priority(b) > Priority(a) {
		return b
	}
	return a
}
