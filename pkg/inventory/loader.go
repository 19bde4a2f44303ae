package inventory

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Canonical export filenames inside an input directory.
const (
	DatabasesFile      = "Oracle Databases Installed.json"
	EvidenceFile       = "Options Usage Evidence.json"
	VirtualDevicesFile = "Virtual Devices.json"
	PhysicalHostsFile  = "Physical Hosts.json"
	ClustersFile       = "Virtualization Clusters.json"
	HostsCSVFile       = "hosts.csv"
)

func loadRecords[T any](path, what string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", what, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s %s: %w", what, path, err)
	}
	return records, nil
}

// LoadEvidence reads the option-usage evidence export. Required input.
func LoadEvidence(path string) ([]EvidenceRecord, error) {
	return loadRecords[EvidenceRecord](path, "options usage evidence")
}

// LoadDatabases reads the installed-databases export. Required input.
func LoadDatabases(path string) ([]DatabaseInstance, error) {
	return loadRecords[DatabaseInstance](path, "installed databases")
}

// LoadVirtualDevices reads the VM inventory export. Required input.
func LoadVirtualDevices(path string) ([]VirtualDevice, error) {
	return loadRecords[VirtualDevice](path, "virtual devices")
}

// LoadPhysicalHosts reads the physical host export. Optional input: callers
// treat an error as a degrade-to-empty condition, not a failure.
func LoadPhysicalHosts(path string) ([]PhysicalHost, error) {
	return loadRecords[PhysicalHost](path, "physical hosts")
}

// LoadClusters reads the virtualization clusters export. Optional input.
func LoadClusters(path string) ([]ClusterRecord, error) {
	return loadRecords[ClusterRecord](path, "virtualization clusters")
}

// LoadHostsCSV reads the CSV fallback for host declarations, used when the
// physical hosts export is absent. Expected columns: virtual_device,
// physical_device, manufacturer, model, cpu_model, processor count, cores
// per cpu, total cores; header matching is tolerant of case and of spaces
// versus underscores. One PhysicalHost is produced per distinct physical
// device, first declaration winning.
func LoadHostsCSV(path string) ([]PhysicalHost, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read host CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse host CSV %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[csvKey(name)] = i
	}
	for _, want := range []string{"virtual_device", "physical_device"} {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("host CSV %s is missing required column %q", path, want)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	number := func(row []string, name string) Count {
		n, err := strconv.Atoi(field(row, name))
		if err != nil {
			return 0
		}
		return Count(n)
	}

	var hosts []PhysicalHost
	seen := map[string]bool{}
	for _, row := range rows[1:] {
		device := field(row, "physical_device")
		if device == "" || seen[Key(device)] {
			continue
		}
		seen[Key(device)] = true
		hosts = append(hosts, PhysicalHost{
			DeviceName:      device,
			Manufacturer:    field(row, "manufacturer"),
			Model:           field(row, "model"),
			CPUModel:        field(row, "cpu_model"),
			TotalProcessors: number(row, "processor_count"),
			CoresPerCPU:     number(row, "cores_per_cpu"),
			TotalCores:      number(row, "total_cores"),
		})
	}
	return hosts, nil
}

func csvKey(name string) string {
	return strings.ReplaceAll(Key(name), " ", "_")
}
