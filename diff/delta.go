package diff

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// unescaper reverts the percent-escapes QueryEscape applies to the
// characters the delta format leaves unreserved, for compatibility
// with encodeURI-based transcripts.
var unescaper = strings.NewReplacer(
	"%21", "!", "%7E", "~", "%27", "'",
	"%28", "(", "%29", ")", "%3B", ";",
	"%2F", "/", "%3F", "?", "%3A", ":",
	"%40", "@", "%26", "&", "%3D", "=",
	"%2B", "+", "%24", "$", "%2C", ",",
	"%23", "#", "%2A", "*")

// DiffToDelta crushes a diff into an encoded string which describes the
// operations required to transform text1 into text2.
// E.g. =3\t-2\t+ing -> Keep 3 chars, delete 2 chars, insert 'ing'.
// Operations are tab-separated. Inserted text is escaped using %xx
// notation.
func (dmp *DiffMatchPatch) DiffToDelta(diffs []Diff) string {
	var text strings.Builder
	for _, aDiff := range diffs {
		switch aDiff.Type {
		case INSERT:
			text.WriteString("+")
			text.WriteString(strings.Replace(url.QueryEscape(aDiff.Text), "+", " ", -1))
		case DELETE:
			text.WriteString("-")
			text.WriteString(strconv.Itoa(utf8.RuneCountInString(aDiff.Text)))
		case EQUAL:
			text.WriteString("=")
			text.WriteString(strconv.Itoa(utf8.RuneCountInString(aDiff.Text)))
		}
		text.WriteString("\t")
	}
	delta := text.String()
	if len(delta) != 0 {
		// Strip off trailing tab character.
		delta = delta[:len(delta)-1]
		delta = unescaper.Replace(delta)
	}
	return delta
}

// DiffFromDelta rehydrates a diff from the original text1 and an
// encoded delta transcript.
func (dmp *DiffMatchPatch) DiffFromDelta(text1, delta string) ([]Diff, error) {
	var diffs []Diff

	runes := []rune(text1)
	pointer := 0 // Cursor in text1, in code units.

	for _, token := range strings.Split(delta, "\t") {
		if len(token) == 0 {
			// Blank tokens are ok (from a trailing \t).
			continue
		}

		// Each token begins with a one character parameter which specifies
		// the operation of this token (delete, insert, equality).
		param := token[1:]
		switch op := token[0]; op {
		case '+':
			// Decode would change all "+" to " ".
			param = strings.Replace(param, "+", "%2b", -1)
			insert, err := url.QueryUnescape(param)
			if err != nil {
				return nil, fmt.Errorf("delta token %q: %w", token, ErrIllegalEscape)
			}
			if !utf8.ValidString(insert) {
				return nil, fmt.Errorf("delta token %q decodes to invalid UTF-8: %w", token, ErrIllegalEscape)
			}
			diffs = append(diffs, Diff{INSERT, insert})
		case '-', '=':
			n, err := strconv.Atoi(param)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("delta token %q: %w", token, ErrInvalidNumber)
			}
			if pointer+n > len(runes) {
				return nil, fmt.Errorf("delta consumes %d code units, source has %d: %w",
					pointer+n, len(runes), ErrLengthMismatch)
			}
			text := string(runes[pointer : pointer+n])
			pointer += n
			if op == '=' {
				diffs = append(diffs, Diff{EQUAL, text})
			} else {
				diffs = append(diffs, Diff{DELETE, text})
			}
		default:
			return nil, fmt.Errorf("delta token %q: %w", token, ErrInvalidOp)
		}
	}
	if pointer != len(runes) {
		return nil, fmt.Errorf("delta consumed %d code units, source has %d: %w",
			pointer, len(runes), ErrLengthMismatch)
	}
	return diffs, nil
}
