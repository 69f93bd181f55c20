package analysis

import (
	"regexp"
	"strings"

	"github.com/matzehuels/cobolgraph/pkg/normalize"
)

// token is one word of the procedure text.
type token struct {
	text    string // literal contents without quotes, otherwise the word as written
	upper   string
	literal bool
	period  bool // the token ends a sentence
	rec     normalize.Record
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)

// isName reports whether t can name a paragraph.
func (t token) isName() bool {
	return !t.literal && nameRe.MatchString(t.text) && !isKeyword(t.upper)
}

func (t token) is(word string) bool {
	return !t.literal && t.upper == word
}

// tokenize splits the code windows of records into tokens. Commas and
// semicolons separate like blanks; parentheses are tokens of their own. A
// literal left open at the end of a record closes there, which is how a
// continued literal reads on its first record.
func tokenize(records []normalize.Record) []token {
	var toks []token
	for _, rec := range records {
		toks = scanRecord(toks, rec)
	}
	return toks
}

func scanRecord(toks []token, rec normalize.Record) []token {
	s := []rune(rec.Code)
	for i := 0; i < len(s); {
		r := s[i]
		switch {
		case isBlank(r):
			i++
		case r == '\'' || r == '"':
			j := i + 1
			for j < len(s) {
				if s[j] == r {
					if j+1 < len(s) && s[j+1] == r {
						j += 2
						continue
					}
					break
				}
				j++
			}
			toks = append(toks, token{text: string(s[i+1 : min(j, len(s))]), literal: true, rec: rec})
			i = j + 1
		case r == '(' || r == ')':
			toks = append(toks, token{text: string(r), upper: string(r), rec: rec})
			i++
		case r == '.' && (i+1 == len(s) || isDelim(s[i+1])):
			if len(toks) > 0 {
				toks[len(toks)-1].period = true
			}
			i++
		default:
			j := i
			for j < len(s) && !isDelim(s[j]) {
				j++
			}
			word := string(s[i:j])
			period := false
			if trimmed := strings.TrimRight(word, "."); trimmed != word && trimmed != "" {
				word, period = trimmed, true
			}
			toks = append(toks, token{text: word, upper: strings.ToUpper(word), period: period, rec: rec})
			i = j
		}
	}
	return toks
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == ',' || r == ';'
}

func isDelim(r rune) bool {
	return isBlank(r) || r == '(' || r == ')' || r == '\'' || r == '"'
}

// keywords can never be paragraph names in a call statement.
var keywords = map[string]struct{}{
	"TO": {}, "THRU": {}, "THROUGH": {}, "DEPENDING": {}, "ON": {},
	"UNTIL": {}, "VARYING": {}, "WITH": {}, "TEST": {}, "FOREVER": {},
	"TIMES": {}, "BEFORE": {}, "AFTER": {}, "FROM": {}, "BY": {},
	"END-PERFORM": {}, "END-IF": {}, "END-EVALUATE": {}, "END-EXEC": {},
	"ELSE": {}, "WHEN": {}, "NOT": {}, "AND": {}, "OR": {},
	"ACCEPT": {}, "ADD": {}, "CALL": {}, "CLOSE": {}, "COMPUTE": {},
	"CONTINUE": {}, "DELETE": {}, "DISPLAY": {}, "DIVIDE": {},
	"EVALUATE": {}, "EXEC": {}, "EXIT": {}, "GO": {}, "GOBACK": {},
	"IF": {}, "INITIALIZE": {}, "INSPECT": {}, "MOVE": {}, "MULTIPLY": {},
	"OPEN": {}, "PERFORM": {}, "READ": {}, "REWRITE": {}, "SEARCH": {},
	"SET": {}, "START": {}, "STOP": {}, "STRING": {}, "SUBTRACT": {},
	"UNSTRING": {}, "WRITE": {},
}

func isKeyword(upper string) bool {
	_, ok := keywords[upper]
	return ok
}

// inlineStarts are the words that open an inline PERFORM.
var inlineStarts = map[string]struct{}{
	"UNTIL": {}, "VARYING": {}, "WITH": {}, "TEST": {}, "FOREVER": {},
}
