package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// WordsPerMinute is the reading speed used for reading time estimates
const WordsPerMinute = 200

var (
	wordPattern      = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}'’_-]*`)
	codeBlockPattern = regexp.MustCompile("(?s)```.*?```")
	markupPattern    = regexp.MustCompile(`<[^>]+>|\{\{[^}]*\}\}`)
)

// WordCount counts the prose words in a markdown body. Fenced code blocks,
// HTML tags and template placeholders are not words.
func WordCount(text string) int {
	text = codeBlockPattern.ReplaceAllString(text, " ")
	text = markupPattern.ReplaceAllString(text, " ")
	return len(wordPattern.FindAllString(text, -1))
}

// ReadingMinutes estimates reading time, rounding up to whole minutes.
// Any non-empty text takes at least one minute.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// FormatStats renders a word count and reading time for display
func FormatStats(text string) string {
	words := WordCount(text)
	if words == 0 {
		return "empty"
	}
	unit := "words"
	if words == 1 {
		unit = "word"
	}
	return fmt.Sprintf("%d %s, %d min read", words, unit, ReadingMinutes(words))
}

// Excerpt returns the first paragraph of prose in a markdown body,
// skipping headings, cut to at most max runes
func Excerpt(text string, max int) string {
	text = codeBlockPattern.ReplaceAllString(text, "")
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" || strings.HasPrefix(para, "#") {
			continue
		}
		para = strings.Join(strings.Fields(para), " ")
		runes := []rune(para)
		if max > 0 && len(runes) > max {
			return strings.TrimSpace(string(runes[:max])) + "…"
		}
		return para
	}
	return ""
}
