package rollup

import (
	"github.com/lmstools/oracle-audit-rollup/pkg/inventory"
	"github.com/lmstools/oracle-audit-rollup/pkg/symbol"
)

// DeviceRow is one virtual machine hosting at least one tracked database.
// CPU topology fields come from the raw_data blob; the flat sizing fields of
// the VM export are unreliable and only the flat processor count is carried,
// as the VM's advertised vCPU figure.
type DeviceRow struct {
	VirtualDevice          string
	PhysicalDevice         string
	VirtualizationType     string
	Capped                 string
	DeviceModel            string
	DeviceManufacturer     string
	Hypervisor             string
	HyperThreading         string
	OperatingSystemType    string
	OperatingSystemRelease string
	CPUModel               string
	CPUSpeed               string
	CoresPerSocket         int
	ThreadsPerCore         int
	TotalThreads           int
	VirtualProcessors      int
	OracleCoreFactor       string

	Options map[string]symbol.Symbol
}

// RollUpDevices produces one row per VM referenced by at least one database
// row (inner-join filter: VMs hosting no tracked database are excluded
// entirely). Per-option symbol is the highest priority among the databases
// hosted on that VM.
func RollUpDevices(vms []inventory.VirtualDevice, dbs []DatabaseRow) []DeviceRow {
	// Option symbols per hosting device, merged across its databases.
	deviceOptions := make(map[string]map[string]symbol.Symbol)
	for _, db := range dbs {
		device := inventory.Key(db.DeviceName)
		deviceOptions[device] = mergeOptions(deviceOptions[device], db.Options)
	}

	rows := make([]DeviceRow, 0, len(deviceOptions))
	for _, vm := range vms {
		device := inventory.Key(vm.DeviceName)
		opts, tracked := deviceOptions[device]
		if !tracked {
			continue
		}

		raw := vm.RawData
		rows = append(rows, DeviceRow{
			VirtualDevice:          vm.DeviceName,
			PhysicalDevice:         vm.PhysicalHost,
			VirtualizationType:     vm.VirtualizationType,
			Capped:                 vm.Capped.String(),
			DeviceModel:            raw.Str("device_model"),
			DeviceManufacturer:     raw.Str("device_manufacturer"),
			Hypervisor:             raw.Str("lscpu_hypervisor"),
			HyperThreading:         raw.Str("hyper_threading"),
			OperatingSystemType:    vm.OperatingSystemType,
			OperatingSystemRelease: raw.Str("operating_system_release"),
			CPUModel:               vm.CPUModel,
			CPUSpeed:               raw.Str("cpu_speed"),
			CoresPerSocket:         raw.Int("lscpu_cores_per_socket"),
			ThreadsPerCore:         raw.Int("lscpu_threads_per_core"),
			TotalThreads:           raw.Int("lscpu_total_threads"),
			VirtualProcessors:      vm.TotalProcessors.Int(),
			OracleCoreFactor:       vm.OracleCoreFactor.String(),
			Options:                mergeOptions(nil, opts),
		})
	}

	return rows
}
