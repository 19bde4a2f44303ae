package rollup

import (
	"github.com/lmstools/oracle-audit-rollup/pkg/inventory"
	"github.com/lmstools/oracle-audit-rollup/pkg/symbol"
)

// DatabaseRow is one database instance with its aggregated option symbols.
// Metadata is authoritative for row existence: evidence for a database the
// metadata does not list is dropped.
type DatabaseRow struct {
	DeviceName        string
	DatabaseName      string
	DBID              string
	ProductEdition    string
	ProductVersion    string
	FullVersion       string
	InstanceStatus    string
	GoldenGateEnabled string
	Source            string
	RACHosts          string
	RACInstances      string
	RACMembersCount   string

	// Options holds one symbol per option with resolved evidence; absent
	// keys render as blank cells.
	Options map[string]symbol.Symbol
}

// Key returns the normalized (device, database) identity of the row.
func (r DatabaseRow) Key() DatabaseKey {
	return DatabaseKey{
		Device:   inventory.Key(r.DeviceName),
		Database: inventory.Key(r.DatabaseName),
	}
}

// MergeDatabases left-joins the aggregated evidence onto the installed
// databases: one row per metadata row, blank cells where no evidence
// resolved. Duplicate metadata rows for the same (device, database) collapse
// to one, preferring a row that carries a dbid; a dbid missing from the
// metadata is backfilled from the evidence.
func MergeDatabases(dbs []inventory.DatabaseInstance, idx *EvidenceIndex) []DatabaseRow {
	rows := make([]DatabaseRow, 0, len(dbs))
	byKey := make(map[DatabaseKey]int)

	for _, db := range dbs {
		row := DatabaseRow{
			DeviceName:        db.DeviceName,
			DatabaseName:      db.DatabaseName,
			DBID:              db.DBID.String(),
			ProductEdition:    db.ProductEdition,
			ProductVersion:    db.ProductVersion.String(),
			FullVersion:       db.FullVersion.String(),
			InstanceStatus:    db.InstanceStatus,
			GoldenGateEnabled: db.GoldenGateEnabled.String(),
			Source:            db.Source,
			RACHosts:          db.RACHosts.String(),
			RACInstances:      db.RACInstances.String(),
			RACMembersCount:   db.RACMembersCount.String(),
		}

		key := row.Key()
		if row.DBID == "" {
			row.DBID = idx.DBIDs[key]
		}

		row.Options = make(map[string]symbol.Symbol)
		for _, opt := range idx.Options {
			if sym := idx.SymbolFor(db.DeviceName, db.DatabaseName, opt); sym != symbol.None {
				row.Options[opt] = sym
			}
		}

		if at, seen := byKey[key]; seen {
			// Keep the richer duplicate: a row with a dbid wins.
			if rows[at].DBID == "" && row.DBID != "" {
				rows[at] = row
			}
			continue
		}
		byKey[key] = len(rows)
		rows = append(rows, row)
	}

	return rows
}
