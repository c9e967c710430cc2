package extraction

import (
	"regexp"
	"strings"
)

const linkedInProfilePrefix = "https://www.linkedin.com/in/"

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._-]+@[A-Za-z0-9._-]+\.[A-Za-z0-9_-]+`)

	// phoneRe matches Brazilian numbers: optional +55, optional area code
	// with or without parentheses, then an 8-digit or a 9-digit mobile number
	// whose leading 9 may stand apart ("9 9999-9999"). Group 1 excludes the
	// country code.
	phoneRe = regexp.MustCompile(`(?:\+55[\s-]?)?((?:\(\d{2}\)|\d{2})?[\s-]?(?:9[\s-]?\d{4}|\d{4})[\s-]?\d{4})`)

	linkedInRe = regexp.MustCompile(`(?i)linkedin\.com/in/([A-Za-z0-9-]+)`)

	// nameRe accepts lines made of Latin letters, accented ones included, and spaces.
	nameRe = regexp.MustCompile(`^[\p{Latin}\p{Zs}\s]+$`)
)

// The first occurrence wins for every pattern field; later contacts, such
// as a references section, are ignored.

func extractEmail(doc Document) string {
	return emailRe.FindString(doc.Text)
}

func extractPhone(doc Document) string {
	m := phoneRe.FindStringSubmatch(doc.Text)
	if m == nil {
		return ""
	}

	return digitsOnly(m[1])
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func extractLinkedIn(doc Document) string {
	m := linkedInRe.FindStringSubmatch(doc.Text)
	if m == nil {
		return ""
	}

	return linkedInProfilePrefix + m[1]
}

func (r *compiledRules) extractName(doc Document) string {
	for _, line := range doc.Lines {
		if strings.Contains(line, "@") {
			continue
		}
		if r.isExcludedLine(fold(line)) {
			continue
		}
		if !nameRe.MatchString(line) {
			continue
		}

		return line
	}

	return ""
}

func (r *compiledRules) isExcludedLine(folded string) bool {
	for _, term := range r.nameExclusions {
		if strings.Contains(folded, term) {
			return true
		}
	}
	return false
}

func (r *compiledRules) classifySeniority(doc Document) string {
	for _, group := range r.seniority {
		if containsAny(doc.Lowered, group.keywords) {
			return string(group.level)
		}
	}

	return string(DefaultSeniority)
}

func (r *compiledRules) classifyRole(doc Document) string {
	for _, role := range r.roles {
		if strings.Contains(doc.Lowered, role.keyword) {
			return role.label
		}
	}

	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
