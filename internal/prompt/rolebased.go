package prompt

import "github.com/phrazzld/interview-prep-api/internal/domain"

const roleBasedSystem = `You are playing the role of an interviewer. Adopt this persona fully and write every question in that voice.

Interviewer style: {{.InterviewerStyle}}
Company type: {{.CompanyType}}
Personality traits: {{.Traits}}`

const roleBasedUser = `In character as the interviewer described above, prepare {{.QuestionCount}} {{.Category}} interview questions for a {{.TierLabel}} candidate applying to this role:

{{.RoleDescription}}

Stay in persona:
- Phrase each question the way this interviewer would actually ask it
- Let the company type shape what the questions emphasize
- Calibrate difficulty to the {{.TierLabel}} level

Present the questions as a numbered list, then add 3 preparation recommendations written from the interviewer's perspective ("what I am really looking for").`

const roleBasedReverseUser = `In character as the interviewer described above, suggest {{.QuestionCount}} questions you would be impressed to hear a {{.TierLabel}} candidate ask you about this role:

{{.RoleDescription}}

Stay in persona:
- Favor questions that would land well with this interviewer's style
- Let the company type shape which topics matter

Present the questions as a numbered list, then add 3 recommendations on how to deliver them.`

// registerRoleBased installs the persona-driven templates. These are the
// only templates that require the persona variable triple; rendering them
// without it is a contract violation surfaced as ErrMissingVariable.
func registerRoleBased(l *Library) {
	l.register(newTemplate(
		"role_based_generic",
		domain.TechniqueRoleBased, "", "",
		roleBasedSystem, roleBasedUser,
	))
	l.register(newTemplate(
		"role_based_technical",
		domain.TechniqueRoleBased, domain.CategoryTechnical, "",
		roleBasedSystem, roleBasedUser,
	))
	l.register(newTemplate(
		"role_based_behavioral",
		domain.TechniqueRoleBased, domain.CategoryBehavioral, "",
		roleBasedSystem, roleBasedUser,
	))
	l.register(newTemplate(
		"role_based_case_study",
		domain.TechniqueRoleBased, domain.CategoryCaseStudy, "",
		roleBasedSystem, roleBasedUser,
	))
	l.register(newTemplate(
		"role_based_reverse",
		domain.TechniqueRoleBased, domain.CategoryReverse, "",
		roleBasedSystem, roleBasedReverseUser,
	))
}

// Persona presets offered to the inbound surface. Free-form persona text
// is also accepted; these are the documented defaults.
var Personas = map[string]string{
	"strict":   "formal and demanding; expects precise, comprehensive answers and probes every gap",
	"friendly": "warm and encouraging; creates a comfortable environment and draws out potential",
	"neutral":  "professional and balanced; maintains objective distance and structured evaluation",
}

// DefaultCompanyType is the organization preset assumed when a
// role-based request does not name one.
const DefaultCompanyType = "enterprise"

// CompanyTypes describe the organization context presets for persona
// templates. CompanyTypeDescription expands a preset key into its full
// description.
var CompanyTypes = map[string]string{
	"startup":    "fast-paced and flexible; values adaptability, creativity, and ownership",
	"enterprise": "process-driven and structured; values reliability, scale, and cross-team coordination",
	"agency":     "client-facing and deadline-driven; values versatility and communication",
	"nonprofit":  "mission-driven and resource-constrained; values pragmatism and commitment",
}

// CompanyTypeDescription expands a preset key into "key: description".
// Free-form company text passes through unchanged.
func CompanyTypeDescription(companyType string) string {
	if desc, ok := CompanyTypes[companyType]; ok {
		return companyType + ": " + desc
	}
	return companyType
}
