package rollup

import (
	"sort"

	"github.com/lmstools/oracle-audit-rollup/pkg/inventory"
	"github.com/lmstools/oracle-audit-rollup/pkg/symbol"
)

// HostRow is one physical host aggregated from its VMs: sizing fields are
// sums, option symbols are the highest priority seen across the VMs.
type HostRow struct {
	ClusterName         string
	PhysicalDevice      string
	NumberOfVMs         int
	OperatingSystemType string
	ESXVersion          string
	Manufacturer        string
	Model               string
	CPUModel            string
	TotalProcessors     int
	CoresPerCPU         int
	TotalCores          int
	OracleCoreFactor    string

	// Sums over the host's tracked VMs, sourced from nested raw_data.
	VirtualProcessors int
	VirtualThreads    int

	// SpecKnown reports whether a host inventory record matched this host;
	// when false the hardware fields above are unresolved, not zero.
	SpecKnown bool

	Options map[string]symbol.Symbol
}

// RollUpHosts aggregates device rows onto their physical host and joins host
// hardware specs by device name. A VM referencing a host absent from the
// specs keeps its row with blank spec fields; the join never aborts. Rows
// come back sorted by host name.
//
// Callers with no usable host inventory at all pass specs == nil and get the
// roll-up of the VM data alone; the report layer renders a header-only table
// in that case by not calling this at all.
func RollUpHosts(devices []DeviceRow, specs []inventory.PhysicalHost) []HostRow {
	byHost := make(map[string]*HostRow)
	for _, dev := range devices {
		key := inventory.Key(dev.PhysicalDevice)
		if key == "" {
			// VM without a host reference contributes to no host row.
			continue
		}
		row, ok := byHost[key]
		if !ok {
			row = &HostRow{PhysicalDevice: dev.PhysicalDevice}
			byHost[key] = row
		}
		row.VirtualProcessors += dev.VirtualProcessors
		row.VirtualThreads += dev.TotalThreads
		row.Options = mergeOptions(row.Options, dev.Options)
	}

	specIndex := make(map[string]inventory.PhysicalHost, len(specs))
	for _, spec := range specs {
		key := inventory.Key(spec.DeviceName)
		if _, seen := specIndex[key]; !seen {
			specIndex[key] = spec
		}
	}

	rows := make([]HostRow, 0, len(byHost))
	for key, row := range byHost {
		if spec, ok := specIndex[key]; ok {
			applyHostSpec(row, spec)
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return inventory.Key(rows[i].PhysicalDevice) < inventory.Key(rows[j].PhysicalDevice)
	})
	return rows
}

// applyHostSpec copies hardware fields from the host export onto the row.
// For VMware hosts the raw_data blob overrides the flat sizing: RVTools
// records 1 CPU / 1 core for some ESXi hosts, and the blob carries the real
// figures under its own key names.
func applyHostSpec(row *HostRow, spec inventory.PhysicalHost) {
	row.SpecKnown = true
	row.ClusterName = spec.ClusterName
	row.NumberOfVMs = spec.NumberOfVMs.Int()
	row.OperatingSystemType = spec.OperatingSystemType
	row.ESXVersion = spec.ESXVersion.String()
	row.Manufacturer = spec.Manufacturer
	row.Model = spec.Model
	row.CPUModel = spec.CPUModel
	row.TotalProcessors = spec.TotalProcessors.Int()
	row.CoresPerCPU = spec.CoresPerCPU.Int()
	row.TotalCores = spec.TotalCores.Int()
	row.OracleCoreFactor = spec.OracleCoreFactor.String()

	if inventory.Key(spec.VirtualizationType) != "vmware" {
		return
	}
	raw := spec.RawData
	if raw.Has("# CPU") {
		row.TotalProcessors = raw.Int("# CPU")
	}
	if raw.Has("# Cores") {
		row.TotalCores = raw.Int("# Cores")
	}
	if raw.Has("Cores per CPU") {
		row.CoresPerCPU = raw.Int("Cores per CPU")
	}
	if v := raw.Str("ESX Version"); v != "" && row.ESXVersion == "" {
		row.ESXVersion = v
	}
	if v := raw.Str("Vendor"); v != "" && row.Manufacturer == "" {
		row.Manufacturer = v
	}
}
