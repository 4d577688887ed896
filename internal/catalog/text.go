package catalog

import (
	"regexp"
	"strings"
)

// WordPattern matches one surface word. The search tokenizer and the highlight
// segmenter split on the same pattern.
const WordPattern = `(?i)[a-z0-9']+`

var wordRegex = regexp.MustCompile(WordPattern)

// Words returns the alphanumeric word tokens of text in order, preserving case.
// Example: "Fruits & Veg (fresh)" -> ["Fruits", "Veg", "fresh"]
func Words(text string) []string {
	words := wordRegex.FindAllString(strings.TrimSpace(text), -1)
	if words == nil {
		return []string{}
	}
	return words
}

// CleanText joins the word tokens of text with single spaces
// Example: "  Apple -- pie!" -> "Apple pie"
func CleanText(text string) string {
	return strings.Join(Words(text), " ")
}
