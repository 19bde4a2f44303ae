// Package rollup implements the transformation core: collapsing raw evidence
// into per-database option symbols and rolling them up through VM, host and
// cluster levels. Sizing aggregates by sum, symbols by highest priority, with
// one comparator shared by every level. Every stage is pure: it consumes the
// previous stage's output and produces fresh rows that are never mutated.
package rollup

import (
	"sort"

	"github.com/lmstools/oracle-audit-rollup/pkg/inventory"
	"github.com/lmstools/oracle-audit-rollup/pkg/symbol"
)

// DatabaseKey identifies a database instance across exports. Both parts are
// Key-normalized.
type DatabaseKey struct {
	Device   string
	Database string
}

// EvidenceKey identifies one (database, option) cell. All parts are
// Key-normalized.
type EvidenceKey struct {
	Device   string
	Database string
	Option   string
}

// EvidenceIndex is the aggregated view of the raw evidence: one symbol per
// (database, option) cell, plus the dbid observed for each database and the
// distinct option names seen anywhere in the evidence.
type EvidenceIndex struct {
	Symbols map[EvidenceKey]symbol.Symbol
	DBIDs   map[DatabaseKey]string
	Options []string
}

// AggregateEvidence collapses raw evidence rows into one symbol per
// (device, database, option) key, keeping the highest-priority symbol seen.
// Rows whose result resolves to blank contribute no symbol but still register
// their option name, so the option column exists even when every cell in it
// is blank. The aggregation is order-independent and idempotent.
func AggregateEvidence(records []inventory.EvidenceRecord) *EvidenceIndex {
	idx := &EvidenceIndex{
		Symbols: make(map[EvidenceKey]symbol.Symbol),
		DBIDs:   make(map[DatabaseKey]string),
	}

	options := make(map[string]bool)
	for _, rec := range records {
		opt := inventory.Key(rec.OptionName)
		if opt == "" {
			continue
		}
		options[opt] = true

		key := EvidenceKey{
			Device:   inventory.Key(rec.DeviceName),
			Database: inventory.Key(rec.DatabaseName),
			Option:   opt,
		}
		if sym := symbol.Resolve(rec.Result); sym != symbol.None {
			idx.Symbols[key] = symbol.Max(idx.Symbols[key], sym)
		}

		if dbid := rec.DBID.String(); dbid != "" {
			dbKey := DatabaseKey{Device: key.Device, Database: key.Database}
			if _, ok := idx.DBIDs[dbKey]; !ok {
				idx.DBIDs[dbKey] = dbid
			}
		}
	}

	idx.Options = make([]string, 0, len(options))
	for opt := range options {
		idx.Options = append(idx.Options, opt)
	}
	sort.Strings(idx.Options)

	return idx
}

// SymbolFor returns the aggregated symbol for one (database, option) cell,
// blank when no evidence resolved to a symbol for it.
func (idx *EvidenceIndex) SymbolFor(device, database, option string) symbol.Symbol {
	return idx.Symbols[EvidenceKey{
		Device:   inventory.Key(device),
		Database: inventory.Key(database),
		Option:   inventory.Key(option),
	}]
}

// mergeOptions folds src into dst, keeping the highest-priority symbol per
// option. dst may be nil.
func mergeOptions(dst, src map[string]symbol.Symbol) map[string]symbol.Symbol {
	if dst == nil {
		dst = make(map[string]symbol.Symbol, len(src))
	}
	for opt, sym := range src {
		dst[opt] = symbol.Max(dst[opt], sym)
	}
	return dst
}
