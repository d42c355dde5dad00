package prompt

import "github.com/phrazzld/interview-prep-api/internal/domain"

// fewShotSystem is shared by every example-driven template.
const fewShotSystem = `You are an experienced interview coach. You design interview questions by studying worked examples and producing new questions in the same style, calibrated to the candidate's experience level.`

const fewShotUser = `Generate {{.QuestionCount}} {{.Category}} interview questions for a {{.TierLabel}} candidate, based on this role description:

{{.RoleDescription}}

Here are examples of well-calibrated questions for this level:
{{range $i, $e := .Examples}}
Example: "{{$e.Question}}"
- {{$e.Rationale}}
{{end}}
Now generate {{.QuestionCount}} questions that:
- Match the style and difficulty of the examples
- Are specific to the role description above
- Can each be answered in a focused interview discussion

After the questions, list 3 short preparation recommendations.`

// registerFewShot installs the example-driven templates: per-category
// defaults plus tier refinements for the technical track, where question
// calibration differs most sharply.
func registerFewShot(l *Library) {
	generic := newTemplate(
		"few_shot_generic",
		domain.TechniqueFewShot, "", "",
		fewShotSystem, fewShotUser,
	)
	generic.Examples = []Example{
		{
			Question:  "Walk me through a project you are proud of and the trade-offs you made along the way.",
			Rationale: "Open-ended, works for any track, and surfaces judgment rather than trivia.",
		},
		{
			Question:  "Describe a time you disagreed with a decision and what you did about it.",
			Rationale: "Probes communication and ownership without assuming a specific domain.",
		},
	}
	l.register(generic)

	technical := newTemplate(
		"few_shot_technical",
		domain.TechniqueFewShot, domain.CategoryTechnical, "",
		fewShotSystem, fewShotUser,
	)
	technical.Examples = []Example{
		{
			Question:  "How would you design a cache for a read-heavy service, and what invalidation strategy would you pick?",
			Rationale: "Tests practical system thinking with an answer that scales with seniority.",
		},
		{
			Question:  "What happens between typing a URL into a browser and the page rendering?",
			Rationale: "Layered question that reveals depth across networking, protocols, and rendering.",
		},
		{
			Question:  "Describe a production incident you debugged. How did you find the root cause?",
			Rationale: "Grounds the discussion in real experience rather than puzzle-solving.",
		},
	}
	l.register(technical)

	technicalJunior := newTemplate(
		"few_shot_technical_junior",
		domain.TechniqueFewShot, domain.CategoryTechnical, domain.TierJunior,
		fewShotSystem, fewShotUser,
	)
	technicalJunior.Examples = []Example{
		{
			Question:  "What is the difference between an array and a linked list? When would you use each?",
			Rationale: "Tests fundamental data structure knowledge appropriate for 1-2 years of experience.",
		},
		{
			Question:  "Can you explain what a REST API is and how you would make a GET request?",
			Rationale: "Combines basic theory with a simple practical skill expected of junior engineers.",
		},
		{
			Question:  "What is version control and why is it useful when working on a team?",
			Rationale: "Focuses on collaborative development basics rather than advanced tooling.",
		},
	}
	l.register(technicalJunior)

	technicalSenior := newTemplate(
		"few_shot_technical_senior",
		domain.TechniqueFewShot, domain.CategoryTechnical, domain.TierSenior,
		fewShotSystem, fewShotUser,
	)
	technicalSenior.Examples = []Example{
		{
			Question:  "Design a rate limiter for a public API serving millions of clients. What are the failure modes?",
			Rationale: "Open-ended system design with room to discuss consistency, storage, and degradation.",
		},
		{
			Question:  "How do you approach a large refactor in a codebase with poor test coverage?",
			Rationale: "Surfaces engineering judgment and risk management expected at senior level.",
		},
		{
			Question:  "Tell me about a time you pushed back on a technical decision. What was the outcome?",
			Rationale: "Senior roles require influencing direction, not just implementation.",
		},
	}
	l.register(technicalSenior)

	behavioral := newTemplate(
		"few_shot_behavioral",
		domain.TechniqueFewShot, domain.CategoryBehavioral, "",
		fewShotSystem, fewShotUser,
	)
	behavioral.Examples = []Example{
		{
			Question:  "Tell me about a time you received difficult feedback. How did you respond?",
			Rationale: "Invites a concrete story and reveals coachability.",
		},
		{
			Question:  "Describe a situation where you had to deliver under a tight deadline. What did you cut?",
			Rationale: "Probes prioritization under pressure with a specific, answerable frame.",
		},
		{
			Question:  "Give an example of a conflict with a teammate and how you resolved it.",
			Rationale: "Standard behavioral probe; the follow-up depth comes from the candidate's story.",
		},
	}
	l.register(behavioral)

	caseStudy := newTemplate(
		"few_shot_case_study",
		domain.TechniqueFewShot, domain.CategoryCaseStudy, "",
		fewShotSystem, fewShotUser,
	)
	caseStudy.Examples = []Example{
		{
			Question:  "Our signup conversion dropped 20% last month. How would you investigate?",
			Rationale: "Open diagnostic case testing structured decomposition before solutioning.",
		},
		{
			Question:  "You have budget for one of two features customers are asking for. How do you decide?",
			Rationale: "Forces explicit prioritization criteria and trade-off reasoning.",
		},
	}
	l.register(caseStudy)

	reverse := newTemplate(
		"few_shot_reverse",
		domain.TechniqueFewShot, domain.CategoryReverse, "",
		fewShotSystem, fewShotUser,
	)
	reverse.Examples = []Example{
		{
			Question:  "What are the biggest challenges facing the team in the next six months?",
			Rationale: "Signals strategic interest and yields information the posting never includes.",
		},
		{
			Question:  "How does the team decide what to build next?",
			Rationale: "Reveals how much autonomy and product input the role actually carries.",
		},
	}
	l.register(reverse)
}
