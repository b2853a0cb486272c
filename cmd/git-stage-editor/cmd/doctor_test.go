package cmd

import "testing"

func TestSummarizeDoctorChecks(t *testing.T) {
	checks := []doctorCheck{
		{ID: "a", Status: doctorStatusOK},
		{ID: "b", Status: doctorStatusWarn},
		{ID: "c", Status: doctorStatusFail},
		{ID: "d", Status: doctorStatusOK},
	}

	summary := summarizeDoctorChecks(checks)
	if summary.Total != 4 || summary.OK != 2 || summary.Warn != 1 || summary.Fail != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name    string
		summary doctorSummary
		want    doctorStatus
	}{
		{
			name:    "all ok",
			summary: doctorSummary{Total: 2, OK: 2},
			want:    doctorStatusOK,
		},
		{
			name:    "warn only",
			summary: doctorSummary{Total: 2, OK: 1, Warn: 1},
			want:    doctorStatusWarn,
		},
		{
			name:    "fail takes precedence",
			summary: doctorSummary{Total: 3, OK: 1, Warn: 1, Fail: 1},
			want:    doctorStatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overallStatus(tt.summary); got != tt.want {
				t.Fatalf("overallStatus(%+v) = %q, want %q", tt.summary, got, tt.want)
			}
		})
	}
}

func TestConfigSearchPathsExplicit(t *testing.T) {
	paths := configSearchPaths("/etc/custom.yaml")
	if len(paths) != 1 || paths[0] != "/etc/custom.yaml" {
		t.Fatalf("configSearchPaths() = %v, want [/etc/custom.yaml]", paths)
	}
}

func TestFindFirstExistingPath(t *testing.T) {
	if got := findFirstExistingPath([]string{"/does/not/exist"}); got != "" {
		t.Fatalf("findFirstExistingPath() = %q, want empty", got)
	}
}
