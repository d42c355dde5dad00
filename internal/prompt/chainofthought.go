package prompt

import "github.com/phrazzld/interview-prep-api/internal/domain"

const chainOfThoughtSystem = `You are an expert interview designer. Before writing any question, you reason step by step about what the role requires, what distinguishes candidates at the target level, and what a good answer would demonstrate. Only after this analysis do you write the questions.`

const chainOfThoughtUser = `Let's design {{.QuestionCount}} {{.Category}} interview questions for a {{.TierLabel}} candidate.

Role description:
{{.RoleDescription}}

Work through this step by step:

Step 1 - Analyze the role: identify the 3-4 core competencies the role description implies.
Step 2 - Calibrate the level: for each competency, decide what depth a {{.TierLabel}} candidate should demonstrate.
Step 3 - Design the questions: write {{.QuestionCount}} questions, each targeting one competency at the calibrated depth.
Step 4 - Verify: check that each question is specific to this role, answerable in an interview, and not a trivia lookup.

Show your reasoning for steps 1 and 2 briefly, then present the final questions as a numbered list. Close with 3 preparation recommendations for the candidate.`

const chainOfThoughtCaseUser = `Let's design {{.QuestionCount}} case study prompts for a {{.TierLabel}} candidate.

Role description:
{{.RoleDescription}}

Work through this step by step:

Step 1 - Identify the business context the role operates in.
Step 2 - Choose realistic problem scenarios from that context, scaled to what a {{.TierLabel}} candidate can analyze in 15-20 minutes.
Step 3 - For each scenario, write a case prompt that states the situation, the constraint, and the decision to be made.
Step 4 - Verify each case has no single right answer and rewards structured thinking.

Show your reasoning briefly, then present the final {{.QuestionCount}} case prompts as a numbered list, followed by 3 preparation recommendations.`

// registerChainOfThought installs the step-reasoning templates. The
// per-category variation is in the reasoning scaffold, so one template
// covers most categories with a dedicated variant for case studies.
func registerChainOfThought(l *Library) {
	l.register(newTemplate(
		"chain_of_thought_generic",
		domain.TechniqueChainOfThought, "", "",
		chainOfThoughtSystem, chainOfThoughtUser,
	))
	l.register(newTemplate(
		"chain_of_thought_technical",
		domain.TechniqueChainOfThought, domain.CategoryTechnical, "",
		chainOfThoughtSystem, chainOfThoughtUser,
	))
	l.register(newTemplate(
		"chain_of_thought_behavioral",
		domain.TechniqueChainOfThought, domain.CategoryBehavioral, "",
		chainOfThoughtSystem, chainOfThoughtUser,
	))
	l.register(newTemplate(
		"chain_of_thought_case_study",
		domain.TechniqueChainOfThought, domain.CategoryCaseStudy, "",
		chainOfThoughtSystem, chainOfThoughtCaseUser,
	))
	l.register(newTemplate(
		"chain_of_thought_reverse",
		domain.TechniqueChainOfThought, domain.CategoryReverse, "",
		chainOfThoughtSystem, chainOfThoughtUser,
	))
}
