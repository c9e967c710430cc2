package profile

import (
	"fmt"
	"strings"
)

// Seniority is the coarse experience level inferred from keywords.
type Seniority string

const (
	SeniorityJunior Seniority = "Junior"
	SeniorityPleno  Seniority = "Pleno"
	SeniorityIntern Seniority = "Intern"
	SenioritySenior Seniority = "Senior"
)

// Levels lists every valid seniority value.
var Levels = []Seniority{SeniorityJunior, SeniorityPleno, SeniorityIntern, SenioritySenior}

// ParseSeniority resolves a level name case-insensitively.
func ParseSeniority(s string) (Seniority, error) {
	s = strings.TrimSpace(s)
	for _, level := range Levels {
		if strings.EqualFold(string(level), s) {
			return level, nil
		}
	}

	return "", fmt.Errorf("unknown seniority level %q", s)
}

// CandidateProfile is the structured result of a single extraction.
// Unknown fields are empty strings, Seniority is always set.
type CandidateProfile struct {
	Name        string    `json:"name" yaml:"name" mapstructure:"name"`
	Email       string    `json:"email" yaml:"email" mapstructure:"email"`
	Phone       string    `json:"phone" yaml:"phone" mapstructure:"phone"`
	Seniority   Seniority `json:"seniority" yaml:"seniority" mapstructure:"seniority"`
	DesiredRole string    `json:"desired_role" yaml:"desired_role" mapstructure:"desired_role"`
	LinkedIn    string    `json:"linkedin" yaml:"linkedin" mapstructure:"linkedin"`
	Summary     string    `json:"summary" yaml:"summary" mapstructure:"summary"`
}

// Found returns the number of optional fields that were inferred.
func (p CandidateProfile) Found() int {
	found := 0
	for _, v := range []string{p.Name, p.Email, p.Phone, p.DesiredRole, p.LinkedIn} {
		if v != "" {
			found++
		}
	}

	return found
}
