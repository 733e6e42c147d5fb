package annotation

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	lineTerminatorToken
)

var (
	whitespaceMatcher     = parsly.NewToken(whitespaceToken, " ", matcher.NewWhiteSpace())
	lineTerminatorMatcher = parsly.NewToken(lineTerminatorToken, "line", matcher.NewTerminator('\n', true))
)
