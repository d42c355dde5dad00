package parser

// defaultRecommendations is the fixed advice library returned verbatim
// when the completion carries no structured recommendations. Degraded
// but useful output, not an error.
var defaultRecommendations = []string{
	"Review the role description and align your answers with its key requirements.",
	"Prepare specific examples from your past experience for each likely topic.",
	"Research the company's recent news, products, and engineering culture.",
	"Practice your answers out loud to improve delivery and timing.",
	"Prepare thoughtful questions to ask the interviewer at the end.",
}

// DefaultRecommendations returns a copy of the default preparation
// advice so callers cannot mutate the shared library.
func DefaultRecommendations() []string {
	out := make([]string, len(defaultRecommendations))
	copy(out, defaultRecommendations)
	return out
}
