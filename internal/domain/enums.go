package domain

// Technique identifies the prompt engineering technique used to build a
// prompt. The technique also determines how the completion is parsed.
type Technique string

// Supported prompt techniques.
const (
	TechniqueFewShot          Technique = "few_shot"
	TechniqueChainOfThought   Technique = "chain_of_thought"
	TechniqueZeroShot         Technique = "zero_shot"
	TechniqueRoleBased        Technique = "role_based"
	TechniqueStructuredOutput Technique = "structured_output"
)

// Techniques lists every supported technique in registration order.
func Techniques() []Technique {
	return []Technique{
		TechniqueFewShot,
		TechniqueChainOfThought,
		TechniqueZeroShot,
		TechniqueRoleBased,
		TechniqueStructuredOutput,
	}
}

// IsValidTechnique checks if the given value is a supported technique.
func IsValidTechnique(t Technique) bool {
	switch t {
	case TechniqueFewShot, TechniqueChainOfThought, TechniqueZeroShot,
		TechniqueRoleBased, TechniqueStructuredOutput:
		return true
	default:
		return false
	}
}

// Category identifies the kind of interview the questions target.
type Category string

// Supported interview categories.
const (
	CategoryTechnical  Category = "technical"
	CategoryBehavioral Category = "behavioral"
	CategoryCaseStudy  Category = "case_study"
	CategoryReverse    Category = "reverse"
)

// Categories lists every supported interview category.
func Categories() []Category {
	return []Category{
		CategoryTechnical,
		CategoryBehavioral,
		CategoryCaseStudy,
		CategoryReverse,
	}
}

// IsValidCategory checks if the given value is a supported category.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryTechnical, CategoryBehavioral, CategoryCaseStudy, CategoryReverse:
		return true
	default:
		return false
	}
}

// Tier buckets candidate proficiency and calibrates question difficulty.
type Tier string

// Supported experience tiers.
const (
	TierJunior Tier = "junior"
	TierMid    Tier = "mid"
	TierSenior Tier = "senior"
	TierLead   Tier = "lead"
)

// Tiers lists every supported experience tier.
func Tiers() []Tier {
	return []Tier{TierJunior, TierMid, TierSenior, TierLead}
}

// IsValidTier checks if the given value is a supported tier.
func IsValidTier(t Tier) bool {
	switch t {
	case TierJunior, TierMid, TierSenior, TierLead:
		return true
	default:
		return false
	}
}

// Label returns a human-readable description of the tier, suitable for
// substitution into prompt text.
func (t Tier) Label() string {
	switch t {
	case TierJunior:
		return "junior (1-2 years of experience)"
	case TierMid:
		return "mid-level (3-5 years of experience)"
	case TierSenior:
		return "senior (5+ years of experience)"
	case TierLead:
		return "lead/principal"
	default:
		return string(t)
	}
}

// Difficulty grades a generated question.
type Difficulty string

// Supported question difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyForTier maps an experience tier to the default question
// difficulty used when the completion does not grade questions itself.
func DifficultyForTier(t Tier) Difficulty {
	switch t {
	case TierJunior:
		return DifficultyEasy
	case TierMid:
		return DifficultyMedium
	case TierSenior, TierLead:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}
