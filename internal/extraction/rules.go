package extraction

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/cv-parser/internal/profile"
)

// DefaultSeniority is assigned when no seniority keyword matches.
const DefaultSeniority = profile.SeniorityJunior

// SeniorityRule maps a keyword group to a level. Rules are evaluated in
// slice order and the first group with any keyword present wins.
type SeniorityRule struct {
	Level    profile.Seniority
	Keywords []string
}

// Rules holds the locale-specific keyword tables used by the extractors.
type Rules struct {
	// NameExclusions are terms that disqualify a line from being the candidate name.
	NameExclusions []string
	Seniority      []SeniorityRule
	// Roles is ordered by priority; the first one found in the text wins.
	Roles []string
}

// RulesConfig is the user-facing form of rule overrides, decoded from the
// "rules" configuration section.
type RulesConfig struct {
	NameExclusions []string            `mapstructure:"name-exclusions"`
	Seniority      map[string][]string `mapstructure:"seniority"`
	Roles          []string            `mapstructure:"roles"`
}

// DefaultRules returns the Brazilian Portuguese and English tables.
func DefaultRules() *Rules {
	return &Rules{
		NameExclusions: []string{
			"curriculum", "vitae", "resumo", "objetivo", "dados", "pessoais", "contato",
			"curriculo", "endereco", "telefone", "experiencia", "formacao", "habilidades",
		},
		Seniority: []SeniorityRule{
			{Level: profile.SenioritySenior, Keywords: []string{"senior", "sênior", "lead", "especialista"}},
			{Level: profile.SeniorityPleno, Keywords: []string{"pleno", "mid-level"}},
			{Level: profile.SeniorityIntern, Keywords: []string{"estagiario", "estagiário", "intern"}},
		},
		Roles: []string{
			"desenvolvedor",
			"developer",
			"engenheiro de software",
			"software engineer",
			"analista de sistemas",
			"frontend",
			"backend",
			"fullstack",
			"qa",
			"tester",
			"product owner",
			"scrum master",
			"designer",
		},
	}
}

// Merge applies configuration overrides. Name exclusions and seniority
// keywords are appended; the precedence of seniority groups never changes.
// A configured role list replaces the default one since its order is its priority.
func (r *Rules) Merge(cfg RulesConfig) error {
	r.NameExclusions = append(r.NameExclusions, cfg.NameExclusions...)

	levels := make([]string, 0, len(cfg.Seniority))
	for name := range cfg.Seniority {
		levels = append(levels, name)
	}
	sort.Strings(levels)

	for _, name := range levels {
		level, err := profile.ParseSeniority(name)
		if err != nil {
			return fmt.Errorf("rules.seniority: %w", err)
		}

		idx := r.indexOf(level)
		if idx < 0 {
			return fmt.Errorf("rules.seniority: level %s is the default and takes no keywords", level)
		}
		r.Seniority[idx].Keywords = append(r.Seniority[idx].Keywords, cfg.Seniority[name]...)
	}

	if len(cfg.Roles) > 0 {
		r.Roles = append([]string(nil), cfg.Roles...)
	}

	return nil
}

func (r *Rules) indexOf(level profile.Seniority) int {
	for i, rule := range r.Seniority {
		if rule.Level == level {
			return i
		}
	}
	return -1
}

type seniorityGroup struct {
	level    profile.Seniority
	keywords []string
}

type roleKeyword struct {
	keyword string
	label   string
}

// compiledRules are the folded, validated form of Rules. They are never
// modified after compile returns.
type compiledRules struct {
	nameExclusions []string
	seniority      []seniorityGroup
	roles          []roleKeyword
}

func compile(r *Rules) (*compiledRules, error) {
	if r == nil {
		r = DefaultRules()
	}

	compiled := &compiledRules{}

	for _, term := range r.NameExclusions {
		folded := fold(strings.TrimSpace(term))
		if folded == "" {
			return nil, fmt.Errorf("name exclusion terms must not be empty")
		}
		compiled.nameExclusions = append(compiled.nameExclusions, folded)
	}

	seen := make(map[profile.Seniority]bool, len(r.Seniority))
	for _, rule := range r.Seniority {
		if _, err := profile.ParseSeniority(string(rule.Level)); err != nil {
			return nil, err
		}
		if rule.Level == DefaultSeniority {
			return nil, fmt.Errorf("seniority level %s is the default and takes no keywords", rule.Level)
		}
		if seen[rule.Level] {
			return nil, fmt.Errorf("seniority level %s is defined twice", rule.Level)
		}
		seen[rule.Level] = true

		group := seniorityGroup{level: rule.Level}
		for _, kw := range rule.Keywords {
			folded := fold(strings.TrimSpace(kw))
			if folded == "" {
				return nil, fmt.Errorf("seniority level %s has an empty keyword", rule.Level)
			}
			group.keywords = append(group.keywords, folded)
		}
		if len(group.keywords) == 0 {
			return nil, fmt.Errorf("seniority level %s has no keywords", rule.Level)
		}
		compiled.seniority = append(compiled.seniority, group)
	}

	for _, role := range r.Roles {
		role = strings.TrimSpace(role)
		if role == "" {
			return nil, fmt.Errorf("role keywords must not be empty")
		}
		compiled.roles = append(compiled.roles, roleKeyword{
			keyword: fold(role),
			label:   capitalize(strings.ToLower(role)),
		})
	}

	return compiled, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
