// Package config defines the report layout configuration: which option
// columns appear, in what order, and how each sheet arranges its identity
// block. The layout is an explicit structure handed to the report assembler,
// never package-level mutable state, so reordering columns is a pure
// configuration change.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SheetNames carries the workbook sheet titles, in the fixed workbook order:
// Evidence, Database Details, Virtual Devices, Hosts, Clusters, then the two
// placeholder sheets left for manual analyst entry.
type SheetNames struct {
	Evidence       string `toml:"evidence" yaml:"evidence"`
	Databases      string `toml:"databases" yaml:"databases"`
	VirtualDevices string `toml:"virtual_devices" yaml:"virtual_devices"`
	Hosts          string `toml:"hosts" yaml:"hosts"`
	Clusters       string `toml:"clusters" yaml:"clusters"`
	Summary        string `toml:"summary" yaml:"summary"`
	Entitlements   string `toml:"entitlements" yaml:"entitlements"`
}

// Layout is the column-ordering configuration for the whole report.
type Layout struct {
	// Options is the ordered list of tracked Oracle option columns. When
	// empty, the columns are the distinct option names discovered in the
	// evidence, sorted.
	Options []string `toml:"options" yaml:"options"`

	// Per-sheet identity blocks: the non-option columns, in render order.
	EvidenceColumns []string `toml:"evidence_columns" yaml:"evidence_columns"`
	DatabaseColumns []string `toml:"database_columns" yaml:"database_columns"`
	DeviceColumns   []string `toml:"device_columns" yaml:"device_columns"`
	HostColumns     []string `toml:"host_columns" yaml:"host_columns"`
	ClusterColumns  []string `toml:"cluster_columns" yaml:"cluster_columns"`

	Sheets SheetNames `toml:"sheets" yaml:"sheets"`
}

// Default returns the layout matching the canonical report: full evidence
// column set, identity blocks in audit order, options discovered from the
// evidence.
func Default() *Layout {
	return &Layout{
		EvidenceColumns: []string{
			"device_name", "database_name", "db_version", "option_name",
			"feature_name", "file_name", "result", "note", "dbid", "name",
			"version", "detected_usages", "total_samples", "currently_used",
			"first_usage_date", "last_usage_date", "feature_info",
			"last_sample_date", "last_sample_period", "sample_interval",
			"description", "host_name", "instance_name", "evidence",
		},
		DatabaseColumns: []string{
			"device_name", "dbid", "database_name", "product_edition",
			"product_version", "full_version", "instance_status",
			"goldengate_enabled", "source", "rac_hosts", "rac_instances",
			"rac_members_count",
		},
		DeviceColumns: []string{
			"physical_device", "virtual_device", "virtualization_type",
			"capped", "device_model", "device_manufacturer",
			"lscpu_hypervisor", "hyper_threading", "operating_system_type",
			"operating_system_release", "cpu_model", "cpu_speed",
			"lscpu_cores_per_socket", "lscpu_threads_per_core",
			"lscpu_total_threads", "number_of_virtual_processors",
			"oracle_core_factor",
		},
		HostColumns: []string{
			"cluster_name", "physical_device", "number_of_vms",
			"operating_system_type", "esx_version", "manufacturer", "model",
			"cpu_model", "total_number_of_processors", "cores_per_cpu",
			"total_number_of_cores", "oracle_core_factor",
		},
		ClusterColumns: []string{
			"visdk_server", "cluster_name", "instance_uuid",
			"number_of_hosts", "admission_control_enabled", "num_vmotions",
			"ha_enabled", "drs_enabled", "overall_status",
			"total_number_of_processors", "total_number_of_cores",
		},
		Sheets: SheetNames{
			Evidence:       "Evidence",
			Databases:      "Database Details",
			VirtualDevices: "Virtual Devices",
			Hosts:          "Hosts",
			Clusters:       "Clusters",
			Summary:        "Summary",
			Entitlements:   "Entitlements",
		},
	}
}

// Load reads a layout file over the defaults. The file format is chosen by
// extension: .toml, or .yaml/.yml. Keys absent from the file keep their
// default values; list keys replace the default list wholesale.
func Load(path string) (*Layout, error) {
	layout := Default()
	if path == "" {
		return layout, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, layout); err != nil {
			return nil, fmt.Errorf("failed to parse layout config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, layout); err != nil {
			return nil, fmt.Errorf("failed to parse layout config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported layout config format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
	return layout, nil
}
