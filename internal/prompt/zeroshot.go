package prompt

import "github.com/phrazzld/interview-prep-api/internal/domain"

const zeroShotSystem = `You are an expert interview coach who writes clear, role-specific interview questions.`

const zeroShotUser = `Generate {{.QuestionCount}} {{.Category}} interview questions for a {{.TierLabel}} candidate applying to this role:

{{.RoleDescription}}

Requirements:
- Each question must be specific to the role description, not generic
- Calibrate difficulty to the {{.TierLabel}} level
- Present the questions as a numbered list
- After the questions, add a short "Recommendations" section with 3 preparation tips`

const zeroShotReverseUser = `Generate {{.QuestionCount}} thoughtful questions a {{.TierLabel}} candidate should ask the interviewer for this role:

{{.RoleDescription}}

Requirements:
- Questions should reveal team culture, expectations, and growth opportunities
- Avoid questions answerable from the job posting
- Present the questions as a numbered list
- After the questions, add a short "Recommendations" section with 3 tips on when to ask them`

// registerZeroShot installs the direct-instruction templates. These are
// deliberately plain: no examples, no reasoning scaffold, just a precise
// instruction. The generic fallback doubles as the default for every
// category except reverse interviews, which invert who asks.
func registerZeroShot(l *Library) {
	l.register(newTemplate(
		"zero_shot_generic",
		domain.TechniqueZeroShot, "", "",
		zeroShotSystem, zeroShotUser,
	))
	l.register(newTemplate(
		"zero_shot_technical",
		domain.TechniqueZeroShot, domain.CategoryTechnical, "",
		zeroShotSystem, zeroShotUser,
	))
	l.register(newTemplate(
		"zero_shot_behavioral",
		domain.TechniqueZeroShot, domain.CategoryBehavioral, "",
		zeroShotSystem, zeroShotUser,
	))
	l.register(newTemplate(
		"zero_shot_case_study",
		domain.TechniqueZeroShot, domain.CategoryCaseStudy, "",
		zeroShotSystem, zeroShotUser,
	))
	l.register(newTemplate(
		"zero_shot_reverse",
		domain.TechniqueZeroShot, domain.CategoryReverse, "",
		zeroShotSystem, zeroShotReverseUser,
	))
}
