package profile

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestParseSeniority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		expect  Seniority
		wantErr bool
	}{
		{input: "senior", expect: SenioritySenior},
		{input: "  PLENO ", expect: SeniorityPleno},
		{input: "Intern", expect: SeniorityIntern},
		{input: "junior", expect: SeniorityJunior},
		{input: "staff", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSeniority(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestFound(t *testing.T) {
	p := CandidateProfile{Name: "Maria Souza", Email: "maria@example.com", Seniority: SeniorityJunior, Summary: "text"}
	if p.Found() != 2 {
		t.Fatalf("expected 2 found fields, got %d", p.Found())
	}

	if (CandidateProfile{Seniority: SeniorityJunior}).Found() != 0 {
		t.Fatalf("expected empty profile to report no fields")
	}
}

func TestRenderJSONUsesSnakeCaseKeys(t *testing.T) {
	var buf bytes.Buffer
	p := CandidateProfile{Name: "Maria Souza", Seniority: SenioritySenior, DesiredRole: "Backend"}

	if err := Render(&buf, FormatJSON, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not a JSON object: %v", err)
	}
	if decoded["desired_role"] != "Backend" {
		t.Fatalf("unexpected desired_role: %q", decoded["desired_role"])
	}
	if v, ok := decoded["phone"]; !ok || v != "" {
		t.Fatalf("expected empty phone key to be present, got %q (present=%v)", v, ok)
	}
}

func TestRenderListAndYAML(t *testing.T) {
	var buf bytes.Buffer
	profiles := []CandidateProfile{
		{Name: "Ana Paula Lima", Seniority: SeniorityPleno},
		{Name: "Carlos Pereira", Seniority: SeniorityIntern},
	}

	if err := Render(&buf, FormatJSON, profiles...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "[") {
		t.Fatalf("expected a JSON list, got %s", buf.String())
	}

	buf.Reset()
	if err := Render(&buf, FormatYAML, profiles[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "seniority: Pleno") {
		t.Fatalf("unexpected yaml output: %s", buf.String())
	}

	if err := Render(&buf, "xml", profiles[0]); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestReport(t *testing.T) {
	p := CandidateProfile{Name: "Maria Souza", Seniority: SenioritySenior}

	report, err := Report(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report["name"] != "Maria Souza" {
		t.Fatalf("unexpected name: %q", report["name"])
	}
	if report["seniority"] != "Senior" {
		t.Fatalf("unexpected seniority: %q", report["seniority"])
	}
	if _, ok := report["linkedin"]; !ok {
		t.Fatalf("expected empty fields to be reported")
	}

	keys := ReportKeys(report)
	if len(keys) != 7 || keys[0] != "desired_role" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestDumpToTmpFile(t *testing.T) {
	name, err := DumpToTmpFile(CandidateProfile{Name: "Maria Souza", Seniority: SeniorityJunior})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var p CandidateProfile
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("decoding dump: %v", err)
	}
	if p.Name != "Maria Souza" {
		t.Fatalf("unexpected name in dump: %q", p.Name)
	}
}
