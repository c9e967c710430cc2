package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render writes profiles in the requested format. A single profile is
// rendered as an object, several as a list.
func Render(w io.Writer, format string, profiles ...CandidateProfile) error {
	var payload any = profiles
	if len(profiles) == 1 {
		payload = profiles[0]
	}

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// DumpToTmpFile writes the profile as JSON into a new temporary file and returns its name.
func DumpToTmpFile(p CandidateProfile) (string, error) {
	file, err := os.CreateTemp("", "profile_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := Render(file, FormatJSON, p); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Report flattens the profile into field/value pairs. Empty fields are kept
// so the report always shows what was not found.
func Report(p CandidateProfile) (map[string]string, error) {
	var raw map[string]any
	if err := mapstructure.Decode(p, &raw); err != nil {
		return nil, fmt.Errorf("flatten profile: %w", err)
	}

	report := make(map[string]string, len(raw))
	for key, value := range raw {
		report[key] = fmt.Sprint(value)
	}

	return report, nil
}

// ReportKeys returns the report keys in a stable order.
func ReportKeys(report map[string]string) []string {
	keys := make([]string, 0, len(report))
	for k := range report {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
