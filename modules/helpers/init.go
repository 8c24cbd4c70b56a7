package helpers

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/kennygrant/sanitize"
	"golang.org/x/text/unicode/norm"
)

var markup = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)

var lat = []*unicode.RangeTable{unicode.Letter, unicode.Number}
var nop = []*unicode.RangeTable{unicode.Mark, unicode.Sk, unicode.Lm}

// MaxTextLength bounds free text kept in a cart line.
const MaxTextLength = 255

func Truncate(s string, length int) string {
	var numRunes = 0
	for index := range s {
		numRunes++
		if numRunes > length {
			return s[:index]
		}
	}
	return s
}

// CleanText strips markup, composes unicode, collapses whitespace and
// bounds the length of user given text. Text without tags is kept as
// written, so "R&D" or "a<b" survive.
func CleanText(s string) string {
	if markup.MatchString(s) {
		s = html.UnescapeString(sanitize.HTML(s))
	}
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return Truncate(s, MaxTextLength)
}

func StrSlug(s string) string {

	// Trim before counting
	s = strings.Trim(s, " ")

	buf := make([]rune, 0, len(s))
	dash := false
	for _, r := range norm.NFKD.String(s) {
		switch {
		// unicode 'letters' like mandarin characters pass through
		case unicode.IsOneOf(lat, r):
			buf = append(buf, unicode.ToLower(r))
			dash = true
		case unicode.IsOneOf(nop, r):
			// skip
		case dash:
			buf = append(buf, '-')
			dash = false
		}
	}
	if i := len(buf) - 1; i >= 0 && buf[i] == '-' {
		buf = buf[:i]
	}
	return string(buf)
}
