package media

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AnalyzeText counts characters and whitespace separated words. The
// information separators U+001C..U+001F also split words.
func AnalyzeText(text string) TextStats {
	return TextStats{
		Length:    utf8.RuneCountInString(text),
		WordCount: len(strings.FieldsFunc(text, isWordSeparator)),
	}
}

func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
