package extraction

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/cv-parser/internal/logger"
	"github.com/spigell/cv-parser/internal/profile"
)

const (
	maxNameLength    = 100
	maxSummaryLength = 500

	// values are personal data, debug logs only carry their first runes
	logPreviewLength = 4
)

// Field names a profile attribute produced by one extraction step.
type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldSeniority   Field = "seniority"
	FieldDesiredRole Field = "desired_role"
	FieldLinkedIn    Field = "linkedin"
)

// step is a single independent extractor. Steps never see each other's output.
type step struct {
	field   Field
	extract func(Document) string
}

// Engine turns résumé text into a CandidateProfile. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	steps  []step
	logger *zap.Logger
}

var defaultEngine = mustNew(DefaultRules())

// Extract runs the default engine over raw text.
func Extract(raw string) profile.CandidateProfile {
	return defaultEngine.Extract(raw)
}

// New builds an engine from the given rules; nil rules mean DefaultRules.
// The logger may be nil.
func New(rules *Rules, logger *zap.Logger) (*Engine, error) {
	compiled, err := compile(rules)
	if err != nil {
		return nil, fmt.Errorf("compiling rules: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		steps: []step{
			{field: FieldName, extract: compiled.extractName},
			{field: FieldEmail, extract: extractEmail},
			{field: FieldPhone, extract: extractPhone},
			{field: FieldSeniority, extract: compiled.classifySeniority},
			{field: FieldDesiredRole, extract: compiled.classifyRole},
			{field: FieldLinkedIn, extract: extractLinkedIn},
		},
		logger: logger,
	}, nil
}

func mustNew(rules *Rules) *Engine {
	e, err := New(rules, nil)
	if err != nil {
		panic(err)
	}
	return e
}

// fields returns the extraction steps in execution order.
func (e *Engine) fields() []Field {
	fields := make([]Field, 0, len(e.steps))
	for _, s := range e.steps {
		fields = append(fields, s.field)
	}
	return fields
}

// Extract never fails: fields that cannot be inferred stay empty and
// seniority falls back to DefaultSeniority.
func (e *Engine) Extract(raw string) profile.CandidateProfile {
	doc := Normalize(raw)

	found := make(map[Field]string, len(e.steps))
	for _, s := range e.steps {
		value := s.extract(doc)
		found[s.field] = value

		e.logger.Debug("extraction step",
			zap.String("field", string(s.field)),
			zap.Bool("found", value != ""),
			zap.Int("length", utf8.RuneCountInString(value)),
			zap.String("preview", logger.TruncateForLog(value, logPreviewLength)),
		)
	}

	seniority := profile.Seniority(found[FieldSeniority])
	if seniority == "" {
		seniority = DefaultSeniority
	}

	p := profile.CandidateProfile{
		Name:        truncateRunes(found[FieldName], maxNameLength),
		Email:       found[FieldEmail],
		Phone:       found[FieldPhone],
		Seniority:   seniority,
		DesiredRole: found[FieldDesiredRole],
		LinkedIn:    found[FieldLinkedIn],
		Summary:     truncateRunes(doc.Text, maxSummaryLength),
	}

	e.logger.Debug("profile assembled",
		zap.Int("fields_found", p.Found()),
		zap.Int("lines", len(doc.Lines)),
		zap.String("seniority", string(p.Seniority)),
	)

	return p
}
