// Package report assembles the roll-up stages into named output tables and
// renders them to a workbook or JSON. The assembler runs the stages strictly
// in dependency order; every table carries a fixed column schema from the
// layout configuration.
package report

import (
	"strconv"
	"time"

	"github.com/lmstools/oracle-audit-rollup/pkg/config"
	"github.com/lmstools/oracle-audit-rollup/pkg/inventory"
	"github.com/lmstools/oracle-audit-rollup/pkg/rollup"
)

// Table is one named output view: ordered columns and string-rendered rows.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Inputs carries the five loaded exports. The Available flags distinguish
// "export missing or unparseable" (tolerated, header-only table) from
// "export present but empty".
type Inputs struct {
	Evidence       []inventory.EvidenceRecord
	Databases      []inventory.DatabaseInstance
	VirtualDevices []inventory.VirtualDevice

	Hosts          []inventory.PhysicalHost
	HostsAvailable bool

	Clusters          []inventory.ClusterRecord
	ClustersAvailable bool
}

// Report is the assembled output: the five data tables followed by the two
// placeholder sheets, in workbook order.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Tables      []Table   `json:"tables"`
}

// Assemble runs the pipeline end to end: evidence aggregation, database
// merge, then the device, host and cluster roll-ups, each stage consuming
// only the previous stage's output. A missing host or cluster export yields
// a header-only table; it never aborts the run.
func Assemble(in Inputs, layout *config.Layout) *Report {
	idx := rollup.AggregateEvidence(in.Evidence)
	dbs := rollup.MergeDatabases(in.Databases, idx)
	devices := rollup.RollUpDevices(in.VirtualDevices, dbs)

	var hosts []rollup.HostRow
	if in.HostsAvailable {
		hosts = rollup.RollUpHosts(devices, in.Hosts)
	}
	var clusters []rollup.ClusterRow
	if in.ClustersAvailable {
		clusters = rollup.RollUpClusters(hosts, in.Clusters)
	}

	options := layout.Options
	if len(options) == 0 {
		options = idx.Options
	}

	return &Report{
		GeneratedAt: time.Now(),
		Tables: []Table{
			evidenceTable(in.Evidence, layout),
			databaseTable(dbs, options, layout),
			deviceTable(devices, options, layout),
			hostTable(hosts, options, layout),
			clusterTable(clusters, options, layout),
			{Name: layout.Sheets.Summary},
			{Name: layout.Sheets.Entitlements},
		},
	}
}

func evidenceTable(records []inventory.EvidenceRecord, layout *config.Layout) Table {
	t := Table{Name: layout.Sheets.Evidence, Columns: layout.EvidenceColumns}
	for _, rec := range records {
		row := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			row[i] = evidenceField(rec, col)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func evidenceField(rec inventory.EvidenceRecord, col string) string {
	switch col {
	case "device_name":
		return rec.DeviceName
	case "database_name":
		return rec.DatabaseName
	case "db_version":
		return rec.DBVersion.String()
	case "option_name":
		return rec.OptionName
	case "feature_name":
		return rec.FeatureName
	case "file_name":
		return rec.FileName
	case "result":
		return rec.Result
	case "note":
		return rec.Note.String()
	case "dbid":
		return rec.DBID.String()
	case "name":
		return rec.Name
	case "version":
		return rec.Version.String()
	case "detected_usages":
		return rec.DetectedUsages.String()
	case "total_samples":
		return rec.TotalSamples.String()
	case "currently_used":
		return rec.CurrentlyUsed.String()
	case "first_usage_date":
		return rec.FirstUsageDate.String()
	case "last_usage_date":
		return rec.LastUsageDate.String()
	case "feature_info":
		return rec.FeatureInfo.String()
	case "last_sample_date":
		return rec.LastSampleDate.String()
	case "last_sample_period":
		return rec.LastSamplePeriod.String()
	case "sample_interval":
		return rec.SampleInterval.String()
	case "description":
		return rec.Description.String()
	case "host_name":
		return rec.HostName
	case "instance_name":
		return rec.InstanceName
	case "evidence":
		return rec.Evidence.String()
	default:
		return ""
	}
}

func databaseTable(rows []rollup.DatabaseRow, options []string, layout *config.Layout) Table {
	t := Table{Name: layout.Sheets.Databases, Columns: withOptions(layout.DatabaseColumns, options)}
	for _, db := range rows {
		row := make([]string, 0, len(t.Columns))
		for _, col := range layout.DatabaseColumns {
			row = append(row, databaseField(db, col))
		}
		for _, opt := range options {
			row = append(row, string(db.Options[inventory.Key(opt)]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func databaseField(db rollup.DatabaseRow, col string) string {
	switch col {
	case "device_name":
		return db.DeviceName
	case "dbid":
		return db.DBID
	case "database_name":
		return db.DatabaseName
	case "product_edition":
		return db.ProductEdition
	case "product_version":
		return db.ProductVersion
	case "full_version":
		return db.FullVersion
	case "instance_status":
		return db.InstanceStatus
	case "goldengate_enabled":
		return db.GoldenGateEnabled
	case "source":
		return db.Source
	case "rac_hosts":
		return db.RACHosts
	case "rac_instances":
		return db.RACInstances
	case "rac_members_count":
		return db.RACMembersCount
	default:
		return ""
	}
}

func deviceTable(rows []rollup.DeviceRow, options []string, layout *config.Layout) Table {
	t := Table{Name: layout.Sheets.VirtualDevices, Columns: withOptions(layout.DeviceColumns, options)}
	for _, dev := range rows {
		row := make([]string, 0, len(t.Columns))
		for _, col := range layout.DeviceColumns {
			row = append(row, deviceField(dev, col))
		}
		for _, opt := range options {
			row = append(row, string(dev.Options[inventory.Key(opt)]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func deviceField(dev rollup.DeviceRow, col string) string {
	switch col {
	case "physical_device":
		return dev.PhysicalDevice
	case "virtual_device":
		return dev.VirtualDevice
	case "virtualization_type":
		return dev.VirtualizationType
	case "capped":
		return dev.Capped
	case "device_model":
		return dev.DeviceModel
	case "device_manufacturer":
		return dev.DeviceManufacturer
	case "lscpu_hypervisor":
		return dev.Hypervisor
	case "hyper_threading":
		return dev.HyperThreading
	case "operating_system_type":
		return dev.OperatingSystemType
	case "operating_system_release":
		return dev.OperatingSystemRelease
	case "cpu_model":
		return dev.CPUModel
	case "cpu_speed":
		return dev.CPUSpeed
	case "lscpu_cores_per_socket":
		return strconv.Itoa(dev.CoresPerSocket)
	case "lscpu_threads_per_core":
		return strconv.Itoa(dev.ThreadsPerCore)
	case "lscpu_total_threads":
		return strconv.Itoa(dev.TotalThreads)
	case "number_of_virtual_processors":
		return strconv.Itoa(dev.VirtualProcessors)
	case "oracle_core_factor":
		return dev.OracleCoreFactor
	default:
		return ""
	}
}

func hostTable(rows []rollup.HostRow, options []string, layout *config.Layout) Table {
	t := Table{Name: layout.Sheets.Hosts, Columns: withOptions(layout.HostColumns, options)}
	for _, host := range rows {
		row := make([]string, 0, len(t.Columns))
		for _, col := range layout.HostColumns {
			row = append(row, hostField(host, col))
		}
		for _, opt := range options {
			row = append(row, string(host.Options[inventory.Key(opt)]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func hostField(host rollup.HostRow, col string) string {
	// Hardware columns stay blank for hosts the inventory never described;
	// zero would misread as a measured value.
	spec := func(n int) string {
		if !host.SpecKnown {
			return ""
		}
		return strconv.Itoa(n)
	}
	switch col {
	case "cluster_name":
		return host.ClusterName
	case "physical_device":
		return host.PhysicalDevice
	case "number_of_vms":
		return spec(host.NumberOfVMs)
	case "operating_system_type":
		return host.OperatingSystemType
	case "esx_version":
		return host.ESXVersion
	case "manufacturer":
		return host.Manufacturer
	case "model":
		return host.Model
	case "cpu_model":
		return host.CPUModel
	case "total_number_of_processors":
		return spec(host.TotalProcessors)
	case "cores_per_cpu":
		return spec(host.CoresPerCPU)
	case "total_number_of_cores":
		return spec(host.TotalCores)
	case "oracle_core_factor":
		return host.OracleCoreFactor
	case "number_of_virtual_processors":
		return strconv.Itoa(host.VirtualProcessors)
	case "number_of_virtual_threads":
		return strconv.Itoa(host.VirtualThreads)
	default:
		return ""
	}
}

func clusterTable(rows []rollup.ClusterRow, options []string, layout *config.Layout) Table {
	t := Table{Name: layout.Sheets.Clusters, Columns: withOptions(layout.ClusterColumns, options)}
	for _, cl := range rows {
		row := make([]string, 0, len(t.Columns))
		for _, col := range layout.ClusterColumns {
			row = append(row, clusterField(cl, col))
		}
		for _, opt := range options {
			row = append(row, string(cl.Options[inventory.Key(opt)]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func clusterField(cl rollup.ClusterRow, col string) string {
	switch col {
	case "visdk_server":
		return cl.VISDKServer
	case "cluster_name":
		return cl.ClusterName
	case "instance_uuid":
		return cl.InstanceUUID
	case "number_of_hosts":
		return strconv.Itoa(cl.NumberOfHosts)
	case "admission_control_enabled":
		return cl.AdmissionControlEnabled
	case "num_vmotions":
		return cl.NumVMotions
	case "ha_enabled":
		return cl.HAEnabled
	case "drs_enabled":
		return cl.DRSEnabled
	case "overall_status":
		return cl.OverallStatus
	case "total_number_of_processors":
		return strconv.Itoa(cl.TotalProcessors)
	case "total_number_of_cores":
		return strconv.Itoa(cl.TotalCores)
	default:
		return ""
	}
}

func withOptions(idBlock, options []string) []string {
	cols := make([]string, 0, len(idBlock)+len(options))
	cols = append(cols, idBlock...)
	cols = append(cols, options...)
	return cols
}
