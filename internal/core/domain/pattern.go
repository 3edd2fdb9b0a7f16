package domain

import "strings"

const patternFlags = "imsxuADSUXJn"

// SplitPattern splits a delimited pattern such as "~^(?!t_)~i" into its body and flags.
// Bracket-style delimiters are matched by their closing counterpart.
func SplitPattern(s string) (body, flags string, ok bool) {
	if len(s) < 2 {
		return "", "", false
	}

	open := s[0]
	if isPatternWordChar(open) || open == '\\' || open == ' ' {
		return "", "", false
	}

	closing := open
	switch open {
	case '(':
		closing = ')'
	case '[':
		closing = ']'
	case '{':
		closing = '}'
	case '<':
		closing = '>'
	}

	end := strings.LastIndexByte(s, closing)
	if end <= 0 {
		return "", "", false
	}
	flags = s[end+1:]
	if strings.Trim(flags, patternFlags) != "" {
		return "", "", false
	}
	return s[1:end], flags, true
}

func isPatternWordChar(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
