// Package prompt holds the immutable prompt template library. Templates
// are registered once at startup, keyed by (technique, category, tier),
// and resolved with a tiered fallback so that every supported combination
// yields a usable template.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/interview-prep-api/internal/domain"
)

// Errors returned by the template library.
var (
	// ErrNoTemplate is returned when no template is registered for a
	// technique. Every supported technique registers a generic fallback,
	// so this indicates an unsupported technique value.
	ErrNoTemplate = errors.New("no template registered for technique")

	// ErrMissingVariable is returned when rendering references a variable
	// absent from the supplied variable set. This is a programming
	// contract violation: variable supply is the orchestrator's job.
	ErrMissingVariable = errors.New("missing template variable")

	// ErrRender covers template execution failures other than a missing
	// variable.
	ErrRender = errors.New("rendering template")
)

// Example is one worked question/rationale pair embedded into
// example-driven (few-shot) prompts.
type Example struct {
	Question  string
	Rationale string
}

// Template is an immutable prompt template. The system and user
// instruction bodies are text/template documents over the variable set
// produced by Vars.
type Template struct {
	Name      string
	Technique domain.Technique
	Category  domain.Category
	Tier      domain.Tier

	system *template.Template
	user   *template.Template

	// Examples is the ordered list of worked examples rendered into
	// example-driven templates. Empty for other techniques.
	Examples []Example

	// Schema describes the required output shape for schema-constrained
	// templates, as a JSON Schema document. Empty for other techniques.
	Schema string
}

// Vars is the variable set substituted into a template. Persona fields
// are only required by role-based templates.
type Vars struct {
	RoleDescription  string
	TierLabel        string
	QuestionCount    int
	Category         string
	InterviewerStyle string
	CompanyType      string
	Traits           string
}

// newTemplate parses the instruction bodies eagerly so that malformed
// template text fails at startup rather than per request. Rendering uses
// missingkey=error to surface absent variables.
func newTemplate(
	name string,
	technique domain.Technique,
	category domain.Category,
	tier domain.Tier,
	system, user string,
) *Template {
	return &Template{
		Name:      name,
		Technique: technique,
		Category:  category,
		Tier:      tier,
		system: template.Must(
			template.New(name + ".system").Option("missingkey=error").Parse(system),
		),
		user: template.Must(
			template.New(name + ".user").Option("missingkey=error").Parse(user),
		),
	}
}

// key identifies one registration slot in the library.
type key struct {
	technique domain.Technique
	category  domain.Category
	tier      domain.Tier
}

// Library is the immutable template lookup table. It must not be mutated
// after construction; Resolve and Render are safe for concurrent use.
type Library struct {
	templates map[key]*Template
}

// NewLibrary builds the library with every default template registered:
// one template per (technique, category), tier-specific refinements where
// they exist, and a mandatory generic fallback per technique.
func NewLibrary() *Library {
	lib := &Library{templates: make(map[key]*Template)}

	registerFewShot(lib)
	registerChainOfThought(lib)
	registerZeroShot(lib)
	registerRoleBased(lib)
	registerStructuredOutput(lib)

	return lib
}

// register stores a template under its (technique, category, tier) key.
// Later registrations for the same key win; the default set has no
// duplicates.
func (l *Library) register(t *Template) {
	l.templates[key{t.Technique, t.Category, t.Tier}] = t
}

// Resolve selects the template for a (technique, category, tier) triple.
// Lookup order: exact (technique, category, tier) match, then the
// category template without a tier, then the technique-wide generic
// fallback. The fallback registrations make this total over the
// supported enums; ErrNoTemplate only occurs for unknown techniques.
func (l *Library) Resolve(
	technique domain.Technique,
	category domain.Category,
	tier domain.Tier,
) (*Template, error) {
	if t, ok := l.templates[key{technique, category, tier}]; ok {
		return t, nil
	}
	if t, ok := l.templates[key{technique, category, ""}]; ok {
		return t, nil
	}
	if t, ok := l.templates[key{technique, "", ""}]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoTemplate, technique)
}

// Render substitutes the variable set into the template's instruction
// pair. Both documents render against the same data; a reference to an
// absent variable yields ErrMissingVariable.
func (l *Library) Render(t *Template, vars Vars) (system, user string, err error) {
	data := map[string]any{
		"RoleDescription": vars.RoleDescription,
		"TierLabel":       vars.TierLabel,
		"QuestionCount":   vars.QuestionCount,
		"Category":        vars.Category,
	}
	if vars.InterviewerStyle != "" {
		data["InterviewerStyle"] = vars.InterviewerStyle
	}
	if vars.CompanyType != "" {
		data["CompanyType"] = vars.CompanyType
	}
	if vars.Traits != "" {
		data["Traits"] = vars.Traits
	}
	if len(t.Examples) > 0 {
		data["Examples"] = t.Examples
	}
	if t.Schema != "" {
		data["Schema"] = t.Schema
	}

	system, err = execute(t.system, data)
	if err != nil {
		return "", "", err
	}
	user, err = execute(t.user, data)
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}

// Count returns the number of registered templates.
func (l *Library) Count() int {
	return len(l.templates)
}

func execute(t *template.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// missingkey=error reports absent keys with this message text;
		// text/template exposes no typed error for it.
		if strings.Contains(err.Error(), "no entry for key") {
			return "", fmt.Errorf("%w: %v", ErrMissingVariable, err)
		}
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.String(), nil
}
