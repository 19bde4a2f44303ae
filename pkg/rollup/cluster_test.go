package rollup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmstools/oracle-audit-rollup/pkg/inventory"
	"github.com/lmstools/oracle-audit-rollup/pkg/symbol"
)

func TestRollUpClustersMergesHostSymbols(t *testing.T) {
	hosts := []HostRow{
		{PhysicalDevice: "esx-01", ClusterName: "cl-prod",
			Options: map[string]symbol.Symbol{"rac": symbol.Used}},
		{PhysicalDevice: "esx-02", ClusterName: "CL-PROD",
			Options: map[string]symbol.Symbol{}},
	}
	clusters := []inventory.ClusterRecord{
		{DeviceName: "cl-prod", NumberOfMembers: 2, TotalProcessors: 4, TotalCores: 96},
	}

	rows := RollUpClusters(hosts, clusters)
	require.Len(t, rows, 1)

	// One host shows "+" and the other blank: the cluster rolls up to "+".
	assert.Equal(t, symbol.Used, rows[0].Options["rac"])
	assert.Equal(t, 2, rows[0].NumberOfHosts)
	assert.Equal(t, 4, rows[0].TotalProcessors)
	assert.Equal(t, 96, rows[0].TotalCores)
}

func TestRollUpClustersZeroHostClustersStillAppear(t *testing.T) {
	rows := RollUpClusters(nil, []inventory.ClusterRecord{
		{DeviceName: "cl-empty", NumberOfMembers: 3},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, "cl-empty", rows[0].ClusterName)
	assert.Empty(t, rows[0].Options)
}

func TestRollUpClustersRawDataBackfill(t *testing.T) {
	rows := RollUpClusters(nil, []inventory.ClusterRecord{
		{
			DeviceName: "cl-prod",
			RawData: inventory.RawData{
				"VI SDK Server":           "vcenter.example.com",
				"InstanceUUID":            "b7c1d2e3",
				"NumHosts":                float64(4),
				"NumCpuCores":             "192",
				"AdmissionControlEnabled": true,
				"Num Vmotions":            float64(1289),
				"HA Enabled":              true,
				"DRS enabled":             false,
				"OverallStatus":           "green",
			},
		},
	})

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "vcenter.example.com", row.VISDKServer)
	assert.Equal(t, "b7c1d2e3", row.InstanceUUID)
	assert.Equal(t, 4, row.NumberOfHosts)
	assert.Equal(t, 192, row.TotalCores)
	assert.Equal(t, "true", row.AdmissionControlEnabled)
	assert.Equal(t, "1289", row.NumVMotions)
	assert.Equal(t, "true", row.HAEnabled)
	assert.Equal(t, "false", row.DRSEnabled)
	assert.Equal(t, "green", row.OverallStatus)
}

func TestRollUpClustersFlatFieldsWinOverRawData(t *testing.T) {
	rows := RollUpClusters(nil, []inventory.ClusterRecord{
		{
			DeviceName:      "cl-prod",
			NumberOfMembers: 2,
			TotalCores:      64,
			OverallStatus:   "yellow",
			RawData: inventory.RawData{
				"NumHosts":      float64(99),
				"NumCpuCores":   float64(999),
				"OverallStatus": "green",
			},
		},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].NumberOfHosts)
	assert.Equal(t, 64, rows[0].TotalCores)
	assert.Equal(t, "yellow", rows[0].OverallStatus)
}

func TestRollUpClustersDeduplicatesRecords(t *testing.T) {
	rows := RollUpClusters(nil, []inventory.ClusterRecord{
		{DeviceName: "cl-prod", NumberOfMembers: 2},
		{DeviceName: "CL-PROD", NumberOfMembers: 5},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].NumberOfHosts, "first record wins")
}

// Sizing sums at host and cluster level are exact integer arithmetic over
// their constituents, including zeros.
func TestRollUpSumExactness(t *testing.T) {
	devices := []DeviceRow{
		{VirtualDevice: "vm-1", PhysicalDevice: "esx-01", VirtualProcessors: 0, TotalThreads: 0},
		{VirtualDevice: "vm-2", PhysicalDevice: "esx-01", VirtualProcessors: 3, TotalThreads: 6},
		{VirtualDevice: "vm-3", PhysicalDevice: "esx-01", VirtualProcessors: 5, TotalThreads: 10},
	}

	hosts := RollUpHosts(devices, nil)
	require.Len(t, hosts, 1)
	assert.Equal(t, 8, hosts[0].VirtualProcessors)
	assert.Equal(t, 16, hosts[0].VirtualThreads)
}
