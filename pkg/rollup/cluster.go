package rollup

import (
	"github.com/lmstools/oracle-audit-rollup/pkg/inventory"
	"github.com/lmstools/oracle-audit-rollup/pkg/symbol"
)

// ClusterRow is one virtualization cluster: identity, health and sizing
// fields carried verbatim from the cluster export, option symbols rolled up
// from the cluster's hosts.
type ClusterRow struct {
	VISDKServer             string
	ClusterName             string
	InstanceUUID            string
	NumberOfHosts           int
	AdmissionControlEnabled string
	NumVMotions             string
	HAEnabled               string
	DRSEnabled              string
	OverallStatus           string
	TotalProcessors         int
	TotalCores              int

	Options map[string]symbol.Symbol
}

// RollUpClusters produces one row per cluster metadata record; the cluster
// export is authoritative for existence at this level, so clusters with zero
// live hosts still appear, with all option cells blank. Membership is the
// host row's cluster name. Per-option symbol is the highest priority among
// the cluster's hosts.
func RollUpClusters(hosts []HostRow, clusters []inventory.ClusterRecord) []ClusterRow {
	clusterOptions := make(map[string]map[string]symbol.Symbol)
	for _, host := range hosts {
		key := inventory.Key(host.ClusterName)
		if key == "" {
			continue
		}
		clusterOptions[key] = mergeOptions(clusterOptions[key], host.Options)
	}

	seen := make(map[string]bool)
	rows := make([]ClusterRow, 0, len(clusters))
	for _, rec := range clusters {
		key := inventory.Key(rec.DeviceName)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		raw := rec.RawData
		row := ClusterRow{
			ClusterName:             rec.DeviceName,
			VISDKServer:             raw.Str("VI SDK Server"),
			InstanceUUID:            raw.Str("InstanceUUID"),
			NumberOfHosts:           rec.NumberOfMembers.Int(),
			AdmissionControlEnabled: raw.Str("AdmissionControlEnabled"),
			NumVMotions:             raw.Str("Num Vmotions"),
			HAEnabled:               raw.Str("HA Enabled"),
			DRSEnabled:              raw.Str("DRS enabled"),
			OverallStatus:           rec.OverallStatus,
			TotalProcessors:         rec.TotalProcessors.Int(),
			TotalCores:              rec.TotalCores.Int(),
			Options:                 mergeOptions(nil, clusterOptions[key]),
		}
		if row.OverallStatus == "" {
			row.OverallStatus = raw.Str("OverallStatus")
		}
		if row.NumberOfHosts == 0 {
			row.NumberOfHosts = raw.Int("NumHosts")
		}
		if row.TotalCores == 0 {
			row.TotalCores = raw.Int("NumCpuCores")
		}
		rows = append(rows, row)
	}

	return rows
}
