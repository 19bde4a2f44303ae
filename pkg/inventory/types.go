// Package inventory defines the typed records for the five discovery exports
// consumed by the roll-up, plus the loaders that read them. All joins between
// exports go through Key-normalized device/database names because the exports
// are inconsistent about casing and padding.
package inventory

import "strings"

// Key normalizes a join key the same way for every export: lowercased with
// surrounding whitespace removed.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EvidenceRecord is one raw option-usage evidence row. The full column set is
// carried so the Evidence sheet can reproduce the export verbatim; only
// DeviceName, DatabaseName, OptionName and Result drive the aggregation.
type EvidenceRecord struct {
	DeviceName       string `json:"device_name"`
	DatabaseName     string `json:"database_name"`
	DBVersion        Text   `json:"db_version"`
	OptionName       string `json:"option_name"`
	FeatureName      string `json:"feature_name"`
	FileName         string `json:"file_name"`
	Result           string `json:"result"`
	Note             Text   `json:"note"`
	DBID             Text   `json:"dbid"`
	Name             string `json:"name"`
	Version          Text   `json:"version"`
	DetectedUsages   Text   `json:"detected_usages"`
	TotalSamples     Text   `json:"total_samples"`
	CurrentlyUsed    Text   `json:"currently_used"`
	FirstUsageDate   Text   `json:"first_usage_date"`
	LastUsageDate    Text   `json:"last_usage_date"`
	FeatureInfo      Text   `json:"feature_info"`
	LastSampleDate   Text   `json:"last_sample_date"`
	LastSamplePeriod Text   `json:"last_sample_period"`
	SampleInterval   Text   `json:"sample_interval"`
	Description      Text   `json:"description"`
	HostName         string `json:"host_name"`
	InstanceName     string `json:"instance_name"`
	Evidence         Text   `json:"evidence"`
}

// DatabaseInstance is one installed Oracle database from the databases export.
// Metadata rows are authoritative for which databases appear in the report.
type DatabaseInstance struct {
	DeviceName        string `json:"device_name"`
	DatabaseName      string `json:"database_name"`
	DBID              Text   `json:"dbid"`
	ProductEdition    string `json:"product_edition"`
	ProductVersion    Text   `json:"product_version"`
	FullVersion       Text   `json:"full_version"`
	InstanceStatus    string `json:"instance_status"`
	GoldenGateEnabled Text   `json:"goldengate_enabled"`
	Source            string `json:"source"`
	RACHosts          Text   `json:"rac_hosts"`
	RACInstances      Text   `json:"rac_instances"`
	RACMembersCount   Text   `json:"rac_members_count"`
}

// VirtualDevice is one VM from the virtual devices export. CPU topology is
// read from RawData, not from the flat sizing fields; the flat fields are
// unreliable for this source.
type VirtualDevice struct {
	DeviceName          string  `json:"device_name"`
	PhysicalHost        string  `json:"physical_host"`
	VirtualizationType  string  `json:"virtualization_type"`
	Capped              Text    `json:"capped"`
	OperatingSystemType string  `json:"operating_system_type"`
	CPUModel            string  `json:"cpu_model"`
	TotalProcessors     Count   `json:"total_number_of_processors"`
	TotalCores          Count   `json:"total_number_of_cores"`
	TotalThreads        Count   `json:"total_number_of_threads"`
	OracleCoreFactor    Text    `json:"oracle_core_factor"`
	RawData             RawData `json:"raw_data"`
}

// PhysicalHost is one hypervisor host from the physical hosts export, or a
// row synthesized from the CSV fallback when the export is absent.
type PhysicalHost struct {
	DeviceName          string  `json:"device_name"`
	VirtualizationType  string  `json:"virtualization_type"`
	ClusterName         string  `json:"cluster_name"`
	OperatingSystemType string  `json:"operating_system_type"`
	Manufacturer        string  `json:"manufacturer"`
	Model               string  `json:"model"`
	CPUModel            string  `json:"cpu_model"`
	ESXVersion          Text    `json:"esx_version"`
	TotalProcessors     Count   `json:"total_number_of_processors"`
	CoresPerCPU         Count   `json:"cores_per_cpu"`
	TotalCores          Count   `json:"total_number_of_cores"`
	TotalThreads        Count   `json:"total_number_of_threads"`
	NumberOfVMs         Count   `json:"number_of_vms"`
	OracleCoreFactor    Text    `json:"oracle_core_factor"`
	RawData             RawData `json:"raw_data"`
}

// ClusterRecord is one virtualization cluster from the clusters export.
// Identity and health fields that the export leaves blank are backfilled from
// RawData during the cluster roll-up.
type ClusterRecord struct {
	DeviceName      string  `json:"device_name"`
	NumberOfMembers Count   `json:"number_of_cluster_members"`
	TotalProcessors Count   `json:"total_number_of_processors"`
	TotalCores      Count   `json:"total_number_of_cores"`
	TotalThreads    Count   `json:"total_number_of_threads"`
	OverallStatus   string  `json:"overall_status"`
	RawData         RawData `json:"raw_data"`
}
