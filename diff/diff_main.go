package diff

import (
	"strings"
	"time"
)

// DiffMain finds the differences between two texts. If checklines is
// true a faster, slightly less optimal line-level pre-pass is used on
// large inputs.
func (dmp *DiffMatchPatch) DiffMain(text1, text2 string, checklines bool) []Diff {
	var deadline time.Time
	if dmp.DiffTimeout > 0 {
		deadline = time.Now().Add(dmp.DiffTimeout)
	}
	return dmp.DiffMainDeadline(text1, text2, checklines, deadline)
}

// DiffMainDeadline finds the differences between two texts, giving up
// and settling for a coarser diff once the deadline passes. A zero
// deadline means unbounded.
func (dmp *DiffMatchPatch) DiffMainDeadline(text1, text2 string, checklines bool, deadline time.Time) []Diff {
	return dmp.diffMainRunes([]rune(text1), []rune(text2), checklines, deadline)
}

func (dmp *DiffMatchPatch) diffMainRunes(text1, text2 []rune, checklines bool, deadline time.Time) []Diff {
	// Check for equality (speedup).
	if runesEqual(text1, text2) {
		var diffs []Diff
		if len(text1) > 0 {
			diffs = append(diffs, Diff{EQUAL, string(text1)})
		}
		return diffs
	}

	// Trim off common prefix (speedup).
	commonLength := commonPrefixLength(text1, text2)
	commonPrefix := text1[:commonLength]
	text1 = text1[commonLength:]
	text2 = text2[commonLength:]

	// Trim off common suffix (speedup).
	commonLength = commonSuffixLength(text1, text2)
	commonSuffix := text1[len(text1)-commonLength:]
	text1 = text1[:len(text1)-commonLength]
	text2 = text2[:len(text2)-commonLength]

	// Compute the diff on the middle block.
	diffs := dmp.diffCompute(text1, text2, checklines, deadline)

	// Restore the prefix and suffix.
	if len(commonPrefix) > 0 {
		diffs = append([]Diff{{EQUAL, string(commonPrefix)}}, diffs...)
	}
	if len(commonSuffix) > 0 {
		diffs = append(diffs, Diff{EQUAL, string(commonSuffix)})
	}
	return dmp.DiffCleanupMerge(diffs)
}

// diffCompute finds the differences between two texts assuming they
// share no common affix.
func (dmp *DiffMatchPatch) diffCompute(text1, text2 []rune, checklines bool, deadline time.Time) []Diff {
	if len(text1) == 0 {
		// Just add some text (speedup).
		return []Diff{{INSERT, string(text2)}}
	}
	if len(text2) == 0 {
		// Just delete some text (speedup).
		return []Diff{{DELETE, string(text1)}}
	}

	longtext, shorttext := text1, text2
	if len(text1) <= len(text2) {
		longtext, shorttext = text2, text1
	}

	if i := runesIndex(longtext, shorttext); i != -1 {
		// Shorter text is inside the longer text (speedup).
		op := INSERT
		if len(text1) > len(text2) {
			op = DELETE
		}
		return []Diff{
			{op, string(longtext[:i])},
			{EQUAL, string(shorttext)},
			{op, string(longtext[i+len(shorttext):])},
		}
	}

	if len(shorttext) == 1 {
		// Single character string.
		// After the previous speedup, the character can't be an equality.
		return []Diff{{DELETE, string(text1)}, {INSERT, string(text2)}}
	}

	// Check to see if the problem can be split in two.
	if hm := dmp.diffHalfMatch(text1, text2); hm != nil {
		// Send both pairs off for separate processing.
		diffsA := dmp.diffMainRunes(hm.prefix1, hm.prefix2, checklines, deadline)
		diffsB := dmp.diffMainRunes(hm.suffix1, hm.suffix2, checklines, deadline)
		// Merge the results.
		diffs := append(diffsA, Diff{EQUAL, string(hm.common)})
		return append(diffs, diffsB...)
	}

	if checklines && len(text1) > 100 && len(text2) > 100 {
		return dmp.diffLineMode(text1, text2, deadline)
	}
	return dmp.diffBisect(text1, text2, deadline)
}

// diffLineMode does a quick line-level diff, then rediffs the
// replacement blocks for greater accuracy. This speedup can produce
// non-minimal diffs.
func (dmp *DiffMatchPatch) diffLineMode(text1, text2 []rune, deadline time.Time) []Diff {
	// Scan the text on a line-by-line basis first.
	chars1, chars2, lineArray := dmp.DiffLinesToChars(string(text1), string(text2))

	diffs := dmp.diffMainRunes([]rune(chars1), []rune(chars2), false, deadline)

	// Convert the diff back to original text.
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	// Eliminate freak matches (e.g. blank lines).
	diffs = dmp.DiffCleanupSemantic(diffs)

	// Rediff any replacement blocks, this time character-by-character.
	// Add a dummy entry at the end.
	diffs = append(diffs, Diff{EQUAL, ""})
	pointer := 0
	countDelete := 0
	countInsert := 0
	textDelete := ""
	textInsert := ""

	for pointer < len(diffs) {
		switch diffs[pointer].Type {
		case INSERT:
			countInsert++
			textInsert += diffs[pointer].Text
		case DELETE:
			countDelete++
			textDelete += diffs[pointer].Text
		case EQUAL:
			// Upon reaching an equality, check for prior redundancies.
			if countDelete >= 1 && countInsert >= 1 {
				// Delete the offending records and add the merged ones.
				diffs = splice(diffs, pointer-countDelete-countInsert, countDelete+countInsert)
				pointer = pointer - countDelete - countInsert
				sub := dmp.diffMainRunes([]rune(textDelete), []rune(textInsert), false, deadline)
				for j := len(sub) - 1; j >= 0; j-- {
					diffs = splice(diffs, pointer, 0, sub[j])
				}
				pointer += len(sub)
			}
			countInsert = 0
			countDelete = 0
			textDelete = ""
			textInsert = ""
		}
		pointer++
	}
	return diffs[:len(diffs)-1] // Remove the dummy entry at the end.
}

// DiffBisect finds the middle snake of a diff, splits the problem in
// two and returns the recursively constructed diff. See Myers's 1986
// paper: An O(ND) Difference Algorithm and Its Variations.
func (dmp *DiffMatchPatch) DiffBisect(text1, text2 string, deadline time.Time) []Diff {
	return dmp.diffBisect([]rune(text1), []rune(text2), deadline)
}

func (dmp *DiffMatchPatch) diffBisect(runes1, runes2 []rune, deadline time.Time) []Diff {
	// Cache the text lengths to prevent multiple calls.
	runes1Len := len(runes1)
	runes2Len := len(runes2)
	maxD := (runes1Len + runes2Len + 1) / 2
	vOffset := maxD
	vLength := 2 * maxD
	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for x := range v1 {
		v1[x] = -1
		v2[x] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := runes1Len - runes2Len
	// If the total number of characters is odd, then the front path will
	// collide with the reverse path.
	front := delta%2 != 0
	// Offsets for start and end of k loop.
	// Prevents mapping of space beyond the grid.
	k1start := 0
	k1end := 0
	k2start := 0
	k2end := 0
	for d := 0; d < maxD; d++ {
		// Bail out if deadline is reached.
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		// Walk the front path one step.
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < runes1Len && y1 < runes2Len && runes1[x1] == runes2[y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			if x1 > runes1Len {
				// Ran off the right of the graph.
				k1end += 2
			} else if y1 > runes2Len {
				// Ran off the bottom of the graph.
				k1start += 2
			} else if front {
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					// Mirror x2 onto top-left coordinate system.
					x2 := runes1Len - v2[k2Offset]
					if x1 >= x2 {
						// Overlap detected.
						return dmp.diffBisectSplit(runes1, runes2, x1, y1, deadline)
					}
				}
			}
		}
		// Walk the reverse path one step.
		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < runes1Len && y2 < runes2Len && runes1[runes1Len-x2-1] == runes2[runes2Len-y2-1] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			if x2 > runes1Len {
				// Ran off the left of the graph.
				k2end += 2
			} else if y2 > runes2Len {
				// Ran off the top of the graph.
				k2start += 2
			} else if !front {
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					// Mirror x2 onto top-left coordinate system.
					x2 = runes1Len - x2
					if x1 >= x2 {
						// Overlap detected.
						return dmp.diffBisectSplit(runes1, runes2, x1, y1, deadline)
					}
				}
			}
		}
	}
	// Diff took too long and hit the deadline, or the number of diffs
	// equals the number of characters: no commonality at all.
	return []Diff{{DELETE, string(runes1)}, {INSERT, string(runes2)}}
}

func (dmp *DiffMatchPatch) diffBisectSplit(runes1, runes2 []rune, x, y int, deadline time.Time) []Diff {
	// Compute both diffs serially.
	diffs := dmp.diffMainRunes(runes1[:x], runes2[:y], false, deadline)
	diffsB := dmp.diffMainRunes(runes1[x:], runes2[y:], false, deadline)
	return append(diffs, diffsB...)
}

// The first text may fill the line table up to this many entries; the
// rest is headroom kept for the second text.
const maxLines1 = 40000

// Hard ceiling on the line table, inherited from the 16-bit reference
// encoding.
const maxLines2 = 65535

// DiffLinesToChars compresses both texts to strings whose code units
// are line IDs, sharing one line table. Index 0 is reserved for the
// empty string.
func (dmp *DiffMatchPatch) DiffLinesToChars(text1, text2 string) (string, string, []string) {
	lineArray := []string{""} // e.g. lineArray[4] == "Hello\n"
	lineHash := map[string]int{}

	chars1 := diffLinesToCharsMunge(text1, &lineArray, lineHash, maxLines1)
	chars2 := diffLinesToCharsMunge(text2, &lineArray, lineHash, maxLines2)
	return chars1, chars2, lineArray
}

// diffLinesToCharsMunge splits a text into lines and re-expresses it as
// a string of line-ID code units. Walking the text with an index avoids
// the doubled memory footprint of a wholesale split.
func diffLinesToCharsMunge(text string, lineArray *[]string, lineHash map[string]int, maxLines int) string {
	lineStart := 0
	lineEnd := -1
	runes := []rune{}

	for lineEnd < len(text)-1 {
		if i := strings.IndexByte(text[lineStart:], '\n'); i == -1 {
			lineEnd = len(text) - 1
		} else {
			lineEnd = lineStart + i
		}
		line := text[lineStart : lineEnd+1]

		if lineValue, ok := lineHash[line]; ok {
			runes = append(runes, intToRune(lineValue))
		} else {
			if len(*lineArray) == maxLines {
				// Table full: the entire remainder becomes one line.
				line = text[lineStart:]
				lineEnd = len(text) - 1
			}
			*lineArray = append(*lineArray, line)
			lineHash[line] = len(*lineArray) - 1
			runes = append(runes, intToRune(len(*lineArray)-1))
		}
		lineStart = lineEnd + 1
	}
	return string(runes)
}

// DiffCharsToLines rehydrates the text in a diff from a string of line
// IDs to real lines of text.
func (dmp *DiffMatchPatch) DiffCharsToLines(diffs []Diff, lineArray []string) []Diff {
	hydrated := make([]Diff, 0, len(diffs))
	for _, aDiff := range diffs {
		var text strings.Builder
		for _, r := range aDiff.Text {
			text.WriteString(lineArray[runeToInt(r)])
		}
		aDiff.Text = text.String()
		hydrated = append(hydrated, aDiff)
	}
	return hydrated
}

const (
	surrogateStart = 0xD800
	surrogateEnd   = 0xDFFF
	surrogateDelta = surrogateEnd - surrogateStart + 1
)

// intToRune maps a line-table index onto a rune Go can round-trip
// through a string: IDs detour around the surrogate block and the
// three code points U+FFFD (utf8.RuneError) through U+FFFF.
func intToRune(i int) rune {
	if i < surrogateStart {
		return rune(i)
	}
	if i < (1<<16)-surrogateDelta-3 {
		return rune(i + surrogateDelta)
	}
	return rune(i + surrogateDelta + 3)
}

// runeToInt inverts intToRune.
func runeToInt(r rune) int {
	i := int(r)
	switch {
	case i < surrogateStart:
		return i
	case i < 1<<16:
		return i - surrogateDelta
	default:
		return i - surrogateDelta - 3
	}
}

// DiffCommonPrefix returns the number of code units shared at the start
// of both texts.
func (dmp *DiffMatchPatch) DiffCommonPrefix(text1, text2 string) int {
	// Performance analysis: http://neil.fraser.name/news/2007/10/09/
	return commonPrefixLength([]rune(text1), []rune(text2))
}

// DiffCommonSuffix returns the number of code units shared at the end
// of both texts.
func (dmp *DiffMatchPatch) DiffCommonSuffix(text1, text2 string) int {
	// Performance analysis: http://neil.fraser.name/news/2007/10/09/
	return commonSuffixLength([]rune(text1), []rune(text2))
}

func commonPrefixLength(text1, text2 []rune) int {
	n := min(len(text1), len(text2))
	for i := 0; i < n; i++ {
		if text1[i] != text2[i] {
			return i
		}
	}
	return n
}

func commonSuffixLength(text1, text2 []rune) int {
	n := min(len(text1), len(text2))
	for i := 1; i <= n; i++ {
		if text1[len(text1)-i] != text2[len(text2)-i] {
			return i - 1
		}
	}
	return n
}

// commonSuffixBytes is the byte-offset flavor used where the caller
// goes on to slice UTF-8 strings.
func commonSuffixBytes(text1, text2 string) int {
	n := min(len(text1), len(text2))
	for i := 1; i <= n; i++ {
		if text1[len(text1)-i] != text2[len(text2)-i] {
			return i - 1
		}
	}
	return n
}

// DiffCommonOverlap returns the largest k such that the last k code
// units of text1 equal the first k code units of text2.
func (dmp *DiffMatchPatch) DiffCommonOverlap(text1, text2 string) int {
	// Cache the text lengths to prevent multiple calls.
	text1Length := len(text1)
	text2Length := len(text2)
	// Eliminate the null case.
	if text1Length == 0 || text2Length == 0 {
		return 0
	}
	// Truncate the longer string.
	if text1Length > text2Length {
		text1 = text1[text1Length-text2Length:]
	} else if text1Length < text2Length {
		text2 = text2[:text1Length]
	}
	textLength := min(text1Length, text2Length)
	// Quick check for the worst case.
	if text1 == text2 {
		return textLength
	}

	// Start by looking for a single character match and increase length
	// until no match is found.
	// Performance analysis: http://neil.fraser.name/news/2010/11/04/
	best := 0
	length := 1
	for {
		pattern := text1[textLength-length:]
		found := strings.Index(text2, pattern)
		if found == -1 {
			return best
		}
		length += found
		if found == 0 || text1[textLength-length:] == text2[:length] {
			best = length
			length++
		}
	}
}

// halfMatch carries a five-piece split: text1's prefix and suffix,
// text2's prefix and suffix, and the common middle.
type halfMatch struct {
	prefix1, suffix1 []rune
	prefix2, suffix2 []rune
	common           []rune
}

// DiffHalfMatch reports whether the two texts share a substring at
// least half the length of the longer text. Returns the five pieces
// (text1 prefix, text1 suffix, text2 prefix, text2 suffix, common
// middle), or nil when there is no such split.
func (dmp *DiffMatchPatch) DiffHalfMatch(text1, text2 string) []string {
	hm := dmp.diffHalfMatch([]rune(text1), []rune(text2))
	if hm == nil {
		return nil
	}
	return []string{
		string(hm.prefix1), string(hm.suffix1),
		string(hm.prefix2), string(hm.suffix2),
		string(hm.common),
	}
}

func (dmp *DiffMatchPatch) diffHalfMatch(text1, text2 []rune) *halfMatch {
	if dmp.DiffTimeout <= 0 {
		// Don't risk returning a non-optimal diff if we have unlimited time.
		return nil
	}

	longtext, shorttext := text1, text2
	if len(text1) <= len(text2) {
		longtext, shorttext = text2, text1
	}
	if len(longtext) < 4 || len(shorttext)*2 < len(longtext) {
		return nil // Pointless.
	}

	// First check if the second quarter is the seed for a half-match.
	hm1 := diffHalfMatchI(longtext, shorttext, (len(longtext)+3)/4)
	// Check again based on the third quarter.
	hm2 := diffHalfMatchI(longtext, shorttext, (len(longtext)+1)/2)

	var hm *halfMatch
	switch {
	case hm1 == nil && hm2 == nil:
		return nil
	case hm2 == nil:
		hm = hm1
	case hm1 == nil:
		hm = hm2
	default:
		// Both matched. Select the longest; ties go to the earlier seed.
		if len(hm1.common) >= len(hm2.common) {
			hm = hm1
		} else {
			hm = hm2
		}
	}

	// A half-match was found, sort out the return data so text1's
	// pieces come first.
	if len(text1) > len(text2) {
		return hm
	}
	return &halfMatch{
		prefix1: hm.prefix2, suffix1: hm.suffix2,
		prefix2: hm.prefix1, suffix2: hm.suffix1,
		common: hm.common,
	}
}

// diffHalfMatchI probes for a substring of shorttext that covers at
// least half of longtext, seeded by the quarter-length substring of
// longtext starting at i.
func diffHalfMatchI(longtext, shorttext []rune, i int) *halfMatch {
	seed := longtext[i : i+len(longtext)/4]
	best := &halfMatch{}
	for j := runesIndexOf(shorttext, seed, 0); j != -1; j = runesIndexOf(shorttext, seed, j+1) {
		prefixLength := commonPrefixLength(longtext[i:], shorttext[j:])
		suffixLength := commonSuffixLength(longtext[:i], shorttext[:j])
		if len(best.common) < suffixLength+prefixLength {
			common := append([]rune{}, shorttext[j-suffixLength:j]...)
			best = &halfMatch{
				prefix1: longtext[:i-suffixLength],
				suffix1: longtext[i+prefixLength:],
				prefix2: shorttext[:j-suffixLength],
				suffix2: shorttext[j+prefixLength:],
				common:  append(common, shorttext[j:j+prefixLength]...),
			}
		}
	}
	if len(best.common)*2 >= len(longtext) {
		return best
	}
	return nil
}

// splice replaces amount entries of slice starting at index with
// elements, copying tails so later appends cannot alias.
func splice(slice []Diff, index int, amount int, elements ...Diff) []Diff {
	if len(elements) == amount {
		copy(slice[index:], elements)
		return slice
	}
	need := len(slice) - amount + len(elements)
	out := make([]Diff, 0, need)
	out = append(out, slice[:index]...)
	out = append(out, elements...)
	out = append(out, slice[index+amount:]...)
	return out
}

func runesEqual(r1, r2 []rune) bool {
	if len(r1) != len(r2) {
		return false
	}
	for i, c := range r1 {
		if c != r2[i] {
			return false
		}
	}
	return true
}

// runesIndex returns the rune index of the first occurrence of pattern
// in target, or -1.
func runesIndex(target, pattern []rune) int {
	last := len(target) - len(pattern)
	for i := 0; i <= last; i++ {
		if runesEqual(target[i:i+len(pattern)], pattern) {
			return i
		}
	}
	return -1
}

func runesIndexOf(target, pattern []rune, start int) int {
	if start > len(target) {
		return -1
	}
	if start < 0 {
		start = 0
	}
	i := runesIndex(target[start:], pattern)
	if i == -1 {
		return -1
	}
	return i + start
}
