package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lmstools/oracle-audit-rollup/pkg/config"
	"github.com/lmstools/oracle-audit-rollup/pkg/inventory"
	"github.com/lmstools/oracle-audit-rollup/pkg/report"
)

var (
	inputDir      string
	databasesPath string
	evidencePath  string
	vmsPath       string
	hostsPath     string
	hostsCSVPath  string
	clustersPath  string
	layoutPath    string
	reportFormat  string
	outputDir     string
	outputName    string
)

// newRootCmd creates the audit-rollup root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit-rollup",
		Short: "Consolidate Oracle estate discovery exports into a roll-up report",
		Long: `audit-rollup reads the five discovery exports of an Oracle database
estate (installed databases, option-usage evidence, virtual machines,
physical hosts, virtualization clusters) and produces one multi-sheet
report with option usage rolled up database -> VM -> host -> cluster.

Databases, evidence and virtual machines are required; a missing or
unreadable host or cluster export degrades to an empty sheet.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	cmd.Flags().StringVar(&inputDir, "input", "", "Directory holding the exports under their canonical names")
	cmd.Flags().StringVar(&databasesPath, "databases", "", "Installed databases JSON (overrides --input)")
	cmd.Flags().StringVar(&evidencePath, "evidence", "", "Options usage evidence JSON (overrides --input)")
	cmd.Flags().StringVar(&vmsPath, "vms", "", "Virtual devices JSON (overrides --input)")
	cmd.Flags().StringVar(&hostsPath, "hosts", "", "Physical hosts JSON (optional)")
	cmd.Flags().StringVar(&hostsCSVPath, "hosts-csv", "", "Host declarations CSV fallback (optional)")
	cmd.Flags().StringVar(&clustersPath, "clusters", "", "Virtualization clusters JSON (optional)")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "Column layout config (.toml, .yaml or .yml)")
	cmd.Flags().StringVar(&reportFormat, "format", "xlsx", "Report format (xlsx, json)")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory the report is written to")
	cmd.Flags().StringVar(&outputName, "output", "", "Report filename without extension (default: timestamped)")

	return cmd
}

// resolve picks the explicit flag path, falling back to the canonical
// filename inside --input.
func resolve(explicit, canonical string) string {
	if explicit != "" {
		return explicit
	}
	if inputDir == "" {
		return ""
	}
	return filepath.Join(inputDir, canonical)
}

func run() error {
	var format report.Format
	switch strings.ToLower(reportFormat) {
	case "", "xlsx":
		format = report.XLSXFormat
	case "json":
		format = report.JSONFormat
	default:
		return fmt.Errorf("unsupported report format: %s", reportFormat)
	}

	layout, err := config.Load(layoutPath)
	if err != nil {
		return err
	}

	in, err := loadInputs()
	if err != nil {
		return err
	}

	rep := report.Assemble(*in, layout)

	path, err := report.NewWriter().Write(rep, &report.Options{
		Format:    format,
		OutputDir: outputDir,
		Filename:  outputName,
	})
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("Report written to %s\n", path)
	return nil
}

// loadInputs reads the five exports. Databases, evidence and VMs are
// required and fail the run with a message naming the input; hosts and
// clusters degrade to empty with a warning.
func loadInputs() (*report.Inputs, error) {
	dbPath := resolve(databasesPath, inventory.DatabasesFile)
	evPath := resolve(evidencePath, inventory.EvidenceFile)
	vmPath := resolve(vmsPath, inventory.VirtualDevicesFile)
	required := []struct {
		name, path string
	}{
		{"installed databases", dbPath},
		{"options usage evidence", evPath},
		{"virtual devices", vmPath},
	}
	for _, r := range required {
		if r.path == "" {
			return nil, fmt.Errorf("no %s input: pass --input or the dedicated flag", r.name)
		}
	}

	var in report.Inputs
	var err error
	if in.Databases, err = inventory.LoadDatabases(dbPath); err != nil {
		return nil, err
	}
	if in.Evidence, err = inventory.LoadEvidence(evPath); err != nil {
		return nil, err
	}
	if in.VirtualDevices, err = inventory.LoadVirtualDevices(vmPath); err != nil {
		return nil, err
	}

	in.Hosts, in.HostsAvailable = loadHosts()
	if path := resolve(clustersPath, inventory.ClustersFile); path != "" {
		clusters, err := inventory.LoadClusters(path)
		if err != nil {
			log.Printf("warning: %v; Clusters sheet will be empty", err)
		} else {
			in.Clusters, in.ClustersAvailable = clusters, true
		}
	}

	return &in, nil
}

// loadHosts tries the physical hosts JSON first, then the CSV fallback.
func loadHosts() ([]inventory.PhysicalHost, bool) {
	jsonErr := fmt.Errorf("no physical hosts input configured")
	if path := resolve(hostsPath, inventory.PhysicalHostsFile); path != "" {
		hosts, err := inventory.LoadPhysicalHosts(path)
		if err == nil {
			return hosts, true
		}
		jsonErr = err
	}

	if path := resolve(hostsCSVPath, inventory.HostsCSVFile); path != "" {
		hosts, err := inventory.LoadHostsCSV(path)
		if err == nil {
			log.Printf("warning: %v; using host CSV fallback %s", jsonErr, path)
			return hosts, true
		}
		log.Printf("warning: host CSV fallback failed: %v", err)
	}

	log.Printf("warning: %v; Hosts sheet will be empty", jsonErr)
	return nil, false
}
