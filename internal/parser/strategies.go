package parser

import (
	"regexp"
	"strings"
)

// Marker patterns for line-oriented extraction and pattern splitting.
var (
	// numberedLine matches "1. text", "2) text", "3: text".
	numberedLine = regexp.MustCompile(`^\d+[.):]\s*(.+)$`)

	// bulletLine matches "- text", "* text", "• text".
	bulletLine = regexp.MustCompile(`^[-*•]\s*(.+)$`)

	// numberedMarker locates numbered-item boundaries anywhere in the text.
	numberedMarker = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`)

	// questionMarker locates explicit "Question N:" boundaries.
	questionMarker = regexp.MustCompile(`(?mi)^\s*question\s*\d*\s*[:.]`)

	// doubleBreak splits on blank-line paragraph boundaries.
	doubleBreak = regexp.MustCompile(`\n\s*\n`)

	// boldWrapper strips surrounding markdown emphasis from a segment.
	boldWrapper = regexp.MustCompile(`^\*{1,2}(.*?)\*{1,2}$`)
)

// extractLines is the primary text stage: a line counts as a question
// when it starts with a numeral plus delimiter, a dash, or a bullet
// marker. The marker is stripped; lines below the content floor after
// stripping are discarded as noise.
func extractLines(text string, requested int) ([]string, bool) {
	var questions []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var content string
		if m := numberedLine.FindStringSubmatch(line); m != nil {
			content = m[1]
		} else if m := bulletLine.FindStringSubmatch(line); m != nil {
			content = m[1]
		} else {
			continue
		}

		content = cleanSegment(content)
		if len(content) < minQuestionLength {
			continue
		}
		questions = append(questions, content)
	}

	if len(questions) == 0 {
		return nil, false
	}
	return capQuestions(questions, requested), true
}

// splitPatterns tries coarser segmentations in order: numbered-item
// markers, explicit "Question N:" markers, then double line breaks. The
// first split yielding more than one non-trivial segment wins.
func splitPatterns(text string, requested int) ([]string, bool) {
	splitters := []func(string) []string{
		func(s string) []string { return numberedMarker.Split(s, -1) },
		func(s string) []string { return questionMarker.Split(s, -1) },
		func(s string) []string { return doubleBreak.Split(s, -1) },
	}

	for _, split := range splitters {
		var segments []string
		for _, seg := range split(text) {
			seg = cleanSegment(seg)
			if len(seg) >= minQuestionLength {
				segments = append(segments, seg)
			}
		}
		if len(segments) > 1 {
			return capQuestions(segments, requested), true
		}
	}

	return nil, false
}

// splitSentences is the last resort: split on question marks, keep
// segments above the content floor, and cap at the requested count.
func splitSentences(text string, requested int) ([]string, bool) {
	var questions []string

	for _, seg := range strings.Split(text, "?") {
		seg = cleanSegment(seg)
		if len(seg) < minQuestionLength {
			continue
		}
		questions = append(questions, seg+"?")
	}

	if len(questions) == 0 {
		return nil, false
	}
	return capQuestions(questions, requested), true
}

// cleanSegment normalizes one extracted segment: collapse internal
// whitespace, strip residual list markers and markdown emphasis.
func cleanSegment(seg string) string {
	seg = strings.Join(strings.Fields(seg), " ")
	seg = strings.TrimSpace(seg)

	if m := numberedLine.FindStringSubmatch(seg); m != nil {
		seg = strings.TrimSpace(m[1])
	}
	if m := boldWrapper.FindStringSubmatch(seg); m != nil {
		seg = strings.TrimSpace(m[1])
	}
	return strings.Trim(seg, `"'`+" \t")
}
