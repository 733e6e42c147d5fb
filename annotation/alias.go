package annotation

import (
	"strings"

	"github.com/viant/parsly"
)

const (
	//TagName defines struct tag carrying free-form field annotation
	TagName = "annotation"
	//NameMarker marks annotation line declaring field alias
	NameMarker = "@name"
)

// Alias returns the last whitespace separated token of the first line starting with @name
func Alias(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	text = strings.ReplaceAll(text, "*", "")
	cursor := parsly.NewCursor("", []byte(text), 0)
	for cursor.Pos < len(cursor.Input) {
		line := matchLine(cursor)
		if alias, ok := lineAlias(line); ok {
			return alias, true
		}
	}
	return "", false
}

func matchLine(cursor *parsly.Cursor) string {
	match := cursor.MatchAfterOptional(whitespaceMatcher, lineTerminatorMatcher)
	switch match.Code {
	case lineTerminatorToken:
		line := match.Text(cursor)
		return line[:len(line)-1] //exclude \n
	}
	line := ""
	if cursor.Pos < len(cursor.Input) {
		line = string(cursor.Input[cursor.Pos:])
	}
	cursor.Pos = len(cursor.Input)
	return line
}

func lineAlias(line string) (string, bool) {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimPrefix(line, "//"))
	if !strings.HasPrefix(line, NameMarker) {
		return "", false
	}
	tokens := strings.Fields(line)
	if tokens[0] != NameMarker || len(tokens) < 2 {
		return "", false
	}
	return tokens[len(tokens)-1], true
}
