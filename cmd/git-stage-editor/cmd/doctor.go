package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	gitcli "github.com/xwillq/git-stage-editor/internal/adapters/git"
	"github.com/xwillq/git-stage-editor/internal/config"
)

var (
	doctorJSON   bool
	doctorStrict bool
)

type doctorStatus string

const (
	doctorStatusOK   doctorStatus = "ok"
	doctorStatusWarn doctorStatus = "warn"
	doctorStatusFail doctorStatus = "fail"
)

type doctorCheck struct {
	ID          string                 `json:"id"`
	Status      doctorStatus           `json:"status"`
	Message     string                 `json:"message"`
	Details     map[string]interface{} `json:"details,omitempty"`
	Remediation string                 `json:"remediation,omitempty"`
}

type doctorSummary struct {
	Total int `json:"total"`
	OK    int `json:"ok"`
	Warn  int `json:"warn"`
	Fail  int `json:"fail"`
}

type doctorReport struct {
	Version      string        `json:"version"`
	GeneratedAt  string        `json:"generated_at"`
	Overall      doctorStatus  `json:"overall_status"`
	Summary      doctorSummary `json:"summary"`
	Checks       []doctorCheck `json:"checks"`
	SearchConfig []string      `json:"config_search_paths,omitempty"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run local diagnostics with remediation hints",
	Long: `Run read-only diagnostics against the local setup and print actionable hints.

By default the output is human-readable text.
Use --json for machine-readable output.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output machine-readable JSON")
	doctorCmd.Flags().BoolVar(&doctorStrict, "strict", false, "return non-zero on warnings")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := collectDoctorReport()

	if doctorJSON {
		if err := printDoctorJSON(report); err != nil {
			return err
		}
	} else {
		printDoctorText(report)
	}

	if report.Summary.Fail > 0 {
		return fmt.Errorf("doctor found %d failing check(s)", report.Summary.Fail)
	}
	if doctorStrict && report.Summary.Warn > 0 {
		return fmt.Errorf("doctor strict mode failed with %d warning(s)", report.Summary.Warn)
	}
	return nil
}

func collectDoctorReport() doctorReport {
	checks := make([]doctorCheck, 0, 8)

	gitCommand := config.DefaultGitCommand
	repoPath := ""

	loadedCfg, cfgCheck := checkConfigLoad(cfgFile)
	checks = append(checks, cfgCheck)
	if loadedCfg != nil {
		gitCommand = loadedCfg.Git.Command
		repoPath = loadedCfg.Repository.Path
	}

	checks = append(checks, checkConfigDirectory())
	checks = append(checks, checkGitBinary(gitCommand))
	checks = append(checks, checkRepository(repoPath, gitCommand))
	checks = append(checks, checkTempDir())

	summary := summarizeDoctorChecks(checks)
	return doctorReport{
		Version:      "1.0",
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Overall:      overallStatus(summary),
		Summary:      summary,
		Checks:       checks,
		SearchConfig: configSearchPaths(cfgFile),
	}
}

func checkConfigLoad(path string) (*config.Config, doctorCheck) {
	cfg, err := config.Load(path)
	searchPaths := configSearchPaths(path)
	if err != nil {
		return nil, doctorCheck{
			ID:      "config.load",
			Status:  doctorStatusFail,
			Message: fmt.Sprintf("Failed to load config: %v", err),
			Details: map[string]interface{}{
				"config_path":  strings.TrimSpace(path),
				"search_paths": searchPaths,
			},
			Remediation: "Fix the config file syntax, or run `git-stage-editor config init --force` to regenerate defaults.",
		}
	}

	source := findFirstExistingPath(searchPaths)
	msg := "Configuration loaded using built-in defaults and environment overrides"
	if source != "" {
		msg = "Configuration loaded successfully"
	}

	return cfg, doctorCheck{
		ID:      "config.load",
		Status:  doctorStatusOK,
		Message: msg,
		Details: map[string]interface{}{
			"loaded_from":  source,
			"search_paths": searchPaths,
		},
	}
}

func checkConfigDirectory() doctorCheck {
	dir, err := config.GetConfigDir()
	if err != nil {
		return doctorCheck{
			ID:          "config.directory",
			Status:      doctorStatusFail,
			Message:     fmt.Sprintf("Failed to resolve config directory: %v", err),
			Remediation: "Verify your HOME environment and filesystem permissions.",
		}
	}

	if _, err := os.Stat(dir); err != nil {
		return doctorCheck{
			ID:          "config.directory",
			Status:      doctorStatusWarn,
			Message:     fmt.Sprintf("Config directory does not exist: %s", dir),
			Remediation: "Run `git-stage-editor config init` to create it.",
		}
	}

	return doctorCheck{
		ID:      "config.directory",
		Status:  doctorStatusOK,
		Message: "Config directory exists",
		Details: map[string]interface{}{"path": dir},
	}
}

func checkGitBinary(command string) doctorCheck {
	path, err := exec.LookPath(command)
	if err != nil {
		return doctorCheck{
			ID:          "runtime.git",
			Status:      doctorStatusFail,
			Message:     fmt.Sprintf("git binary %q not found in PATH", command),
			Remediation: "Install git or set git.command to an absolute path.",
		}
	}

	output, err := exec.Command(command, "version").Output()
	if err != nil {
		return doctorCheck{
			ID:          "runtime.git",
			Status:      doctorStatusFail,
			Message:     fmt.Sprintf("git binary found but `%s version` failed: %v", command, err),
			Details:     map[string]interface{}{"path": path},
			Remediation: "Check that the configured git.command is a working git binary.",
		}
	}

	return doctorCheck{
		ID:      "runtime.git",
		Status:  doctorStatusOK,
		Message: "git binary is available",
		Details: map[string]interface{}{
			"path":    path,
			"version": strings.TrimSpace(string(output)),
		},
	}
}

func checkRepository(repoPath, command string) doctorCheck {
	client, err := gitcli.NewClient(repoPath, command)
	if err != nil {
		return doctorCheck{
			ID:          "repository.detect",
			Status:      doctorStatusFail,
			Message:     fmt.Sprintf("No git repository at %s", repoPath),
			Remediation: "Set repository.path to a directory inside a git repository.",
		}
	}

	return doctorCheck{
		ID:      "repository.detect",
		Status:  doctorStatusOK,
		Message: "Git repository detected",
		Details: map[string]interface{}{"root": client.Root()},
	}
}

func checkTempDir() doctorCheck {
	f, err := os.CreateTemp("", "stage-edit-doctor-*")
	if err != nil {
		return doctorCheck{
			ID:          "runtime.tempdir",
			Status:      doctorStatusFail,
			Message:     fmt.Sprintf("Cannot create temporary files: %v", err),
			Remediation: "Check TMPDIR and filesystem permissions.",
		}
	}
	f.Close()
	os.Remove(f.Name())

	return doctorCheck{
		ID:      "runtime.tempdir",
		Status:  doctorStatusOK,
		Message: "Temporary directory is writable",
		Details: map[string]interface{}{"path": os.TempDir()},
	}
}

func summarizeDoctorChecks(checks []doctorCheck) doctorSummary {
	summary := doctorSummary{Total: len(checks)}
	for _, check := range checks {
		switch check.Status {
		case doctorStatusOK:
			summary.OK++
		case doctorStatusWarn:
			summary.Warn++
		case doctorStatusFail:
			summary.Fail++
		}
	}
	return summary
}

func overallStatus(summary doctorSummary) doctorStatus {
	switch {
	case summary.Fail > 0:
		return doctorStatusFail
	case summary.Warn > 0:
		return doctorStatusWarn
	default:
		return doctorStatusOK
	}
}

func configSearchPaths(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}

	paths := []string{"./config.yaml"}
	if dir, err := config.GetConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "config.yaml"))
	}
	return paths
}

func findFirstExistingPath(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func printDoctorJSON(report doctorReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func printDoctorText(report doctorReport) {
	fmt.Printf("git-stage-editor doctor (%s)\n", report.GeneratedAt)
	fmt.Printf("Overall: %s\n\n", report.Overall)

	for _, check := range report.Checks {
		fmt.Printf("[%s] %s: %s\n", strings.ToUpper(string(check.Status)), check.ID, check.Message)
		if check.Remediation != "" && check.Status != doctorStatusOK {
			fmt.Printf("       hint: %s\n", check.Remediation)
		}
	}

	fmt.Printf("\n%d checks: %d ok, %d warn, %d fail\n",
		report.Summary.Total, report.Summary.OK, report.Summary.Warn, report.Summary.Fail)
}
