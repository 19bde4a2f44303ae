package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmstools/oracle-audit-rollup/pkg/inventory"
	"github.com/lmstools/oracle-audit-rollup/pkg/symbol"
)

func TestRollUpHostsSumsAndMerges(t *testing.T) {
	devices := []DeviceRow{
		{
			VirtualDevice: "vm-a", PhysicalDevice: "esx-01",
			VirtualProcessors: 4, TotalThreads: 8,
			Options: map[string]symbol.Symbol{"partitioning": symbol.Historical},
		},
		{
			VirtualDevice: "vm-b", PhysicalDevice: "ESX-01",
			VirtualProcessors: 2, TotalThreads: 4,
			Options: map[string]symbol.Symbol{"partitioning": symbol.Used, "rac": symbol.Verify},
		},
		{
			VirtualDevice: "vm-c", PhysicalDevice: "esx-02",
			VirtualProcessors: 8, TotalThreads: 16,
			Options: map[string]symbol.Symbol{"rac": symbol.Cloned},
		},
	}

	rows := RollUpHosts(devices, []inventory.PhysicalHost{
		{DeviceName: "esx-01", ClusterName: "cl-prod", NumberOfVMs: 12,
			TotalProcessors: 2, CoresPerCPU: 16, TotalCores: 32},
	})

	require.Len(t, rows, 2)

	esx01 := rows[0]
	assert.Equal(t, "esx-01", inventory.Key(esx01.PhysicalDevice))
	assert.Equal(t, 6, esx01.VirtualProcessors, "vCPU sum across VMs")
	assert.Equal(t, 12, esx01.VirtualThreads, "thread sum across VMs")
	assert.Equal(t, symbol.Used, esx01.Options["partitioning"], "highest priority across VMs")
	assert.Equal(t, symbol.Verify, esx01.Options["rac"])
	assert.Equal(t, "cl-prod", esx01.ClusterName)
	assert.Equal(t, 32, esx01.TotalCores)

	esx02 := rows[1]
	assert.Equal(t, "esx-02", esx02.PhysicalDevice)
	assert.Equal(t, "", esx02.ClusterName, "host absent from specs keeps blank spec fields")
	assert.Equal(t, symbol.Cloned, esx02.Options["rac"])
}

func TestRollUpHostsNoSpecsStillAggregates(t *testing.T) {
	devices := []DeviceRow{
		{VirtualDevice: "vm-a", PhysicalDevice: "esx-01", VirtualProcessors: 4,
			Options: map[string]symbol.Symbol{"rac": symbol.Used}},
	}

	rows := RollUpHosts(devices, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].VirtualProcessors)
	assert.Equal(t, symbol.Used, rows[0].Options["rac"])
}

func TestRollUpHostsSkipsUnhostedVMs(t *testing.T) {
	devices := []DeviceRow{
		{VirtualDevice: "vm-a", PhysicalDevice: ""},
		{VirtualDevice: "vm-b", PhysicalDevice: "esx-01"},
	}

	rows := RollUpHosts(devices, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "esx-01", rows[0].PhysicalDevice)
}

func TestRollUpHostsVMwareRawDataOverride(t *testing.T) {
	devices := []DeviceRow{
		{VirtualDevice: "vm-a", PhysicalDevice: "esx-01"},
	}
	specs := []inventory.PhysicalHost{
		{
			DeviceName:         "esx-01",
			VirtualizationType: "VMWare",
			// RVTools bogus flat sizing.
			TotalProcessors: 1,
			TotalCores:      1,
			RawData: inventory.RawData{
				"# CPU":         float64(2),
				"# Cores":       "48",
				"Cores per CPU": float64(24),
				"ESX Version":   "VMware ESXi 7.0.3",
				"Vendor":        "Dell Inc.",
			},
		},
	}

	rows := RollUpHosts(devices, specs)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 2, row.TotalProcessors)
	assert.Equal(t, 48, row.TotalCores)
	assert.Equal(t, 24, row.CoresPerCPU)
	assert.Equal(t, "VMware ESXi 7.0.3", row.ESXVersion)
	assert.Equal(t, "Dell Inc.", row.Manufacturer)
}

func TestRollUpHostsNonVMwareKeepsFlatSizing(t *testing.T) {
	devices := []DeviceRow{
		{VirtualDevice: "lpar-1", PhysicalDevice: "pwr-01"},
	}
	specs := []inventory.PhysicalHost{
		{
			DeviceName:         "pwr-01",
			VirtualizationType: "PowerVM",
			TotalProcessors:    4,
			TotalCores:         32,
			RawData:            inventory.RawData{"# CPU": float64(99)},
		},
	}

	rows := RollUpHosts(devices, specs)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].TotalProcessors)
	assert.Equal(t, 32, rows[0].TotalCores)
}

func TestRollUpHostsEmptyDevices(t *testing.T) {
	assert.Empty(t, RollUpHosts(nil, []inventory.PhysicalHost{{DeviceName: "esx-01"}}),
		"hosts exist only when VM data references them")
}
