package diff

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Patch is one hunk: a localized change with equal-context around it
// and offsets into the source (Start1) and destination (Start2) texts.
type Patch struct {
	diffs   []Diff
	Start1  int
	Start2  int
	Length1 int
	Length2 int
}

// String emulates GNU diff's unified format.
// Header: @@ -382,8 +481,9 @@
// Indices are printed as 1-based, not 0-based.
func (p *Patch) String() string {
	var coords1, coords2 string

	if p.Length1 == 0 {
		coords1 = strconv.Itoa(p.Start1) + ",0"
	} else if p.Length1 == 1 {
		coords1 = strconv.Itoa(p.Start1 + 1)
	} else {
		coords1 = strconv.Itoa(p.Start1+1) + "," + strconv.Itoa(p.Length1)
	}

	if p.Length2 == 0 {
		coords2 = strconv.Itoa(p.Start2) + ",0"
	} else if p.Length2 == 1 {
		coords2 = strconv.Itoa(p.Start2 + 1)
	} else {
		coords2 = strconv.Itoa(p.Start2+1) + "," + strconv.Itoa(p.Length2)
	}

	var text strings.Builder
	text.WriteString("@@ -" + coords1 + " +" + coords2 + " @@\n")

	// Escape the body of the patch with %xx notation.
	for _, aDiff := range p.diffs {
		switch aDiff.Type {
		case INSERT:
			text.WriteString("+")
		case DELETE:
			text.WriteString("-")
		case EQUAL:
			text.WriteString(" ")
		}
		text.WriteString(strings.Replace(url.QueryEscape(aDiff.Text), "+", " ", -1))
		text.WriteString("\n")
	}
	return unescaper.Replace(text.String())
}

// patchAddContext grows the equal-context around a hunk until the
// covered pattern is unique in text, without letting it expand beyond
// what the match engine's word width can locate.
func (dmp *DiffMatchPatch) patchAddContext(patch Patch, text string) Patch {
	if len(text) == 0 {
		return patch
	}

	pattern := text[patch.Start2 : patch.Start2+patch.Length1]
	padding := 0

	// Look for the first and last matches of pattern in text. If two
	// different matches are found, increase the pattern length.
	for strings.Index(text, pattern) != strings.LastIndex(text, pattern) &&
		len(pattern) < dmp.MatchMaxBits-2*dmp.PatchMargin {
		padding += dmp.PatchMargin
		maxStart := max(0, patch.Start2-padding)
		minEnd := min(len(text), patch.Start2+patch.Length1+padding)
		pattern = text[maxStart:minEnd]
	}
	// Add one chunk for good luck.
	padding += dmp.PatchMargin

	// Add the prefix.
	prefix := text[max(0, patch.Start2-padding):patch.Start2]
	if len(prefix) != 0 {
		patch.diffs = append([]Diff{{EQUAL, prefix}}, patch.diffs...)
	}
	// Add the suffix.
	suffix := text[patch.Start2+patch.Length1 : min(len(text), patch.Start2+patch.Length1+padding)]
	if len(suffix) != 0 {
		patch.diffs = append(patch.diffs, Diff{EQUAL, suffix})
	}

	// Roll back the start points.
	patch.Start1 -= len(prefix)
	patch.Start2 -= len(prefix)
	// Extend the lengths.
	patch.Length1 += len(prefix) + len(suffix)
	patch.Length2 += len(prefix) + len(suffix)

	return patch
}

// PatchMake computes a list of patches to turn one text into another.
// It accepts four argument shapes:
//
//	PatchMake(text1, text2 string)
//	PatchMake(diffs []Diff)
//	PatchMake(text1 string, diffs []Diff)
//	PatchMake(text1, text2 string, diffs []Diff)   (text2 is ignored)
//
// Any other combination returns ErrUnknownCall.
func (dmp *DiffMatchPatch) PatchMake(opt ...interface{}) ([]Patch, error) {
	switch len(opt) {
	case 1:
		diffs, ok := opt[0].([]Diff)
		if !ok {
			break
		}
		text1 := dmp.DiffText1(diffs)
		return dmp.PatchMake(text1, diffs)
	case 2:
		text1, ok := opt[0].(string)
		if !ok {
			break
		}
		switch t := opt[1].(type) {
		case string:
			diffs := dmp.DiffMain(text1, t, true)
			if len(diffs) > 2 {
				diffs = dmp.DiffCleanupSemantic(diffs)
				diffs = dmp.DiffCleanupEfficiency(diffs)
			}
			return dmp.PatchMake(text1, diffs)
		case []Diff:
			return dmp.patchMake2(text1, t), nil
		}
	case 3:
		return dmp.PatchMake(opt[0], opt[2])
	}
	kinds := make([]string, len(opt))
	for i, o := range opt {
		kinds[i] = fmt.Sprintf("%T", o)
	}
	return nil, fmt.Errorf("patch make(%s): %w", strings.Join(kinds, ", "), ErrUnknownCall)
}

// patchMake2 computes a list of patches to turn text1 into text2;
// diffs is the delta between them.
func (dmp *DiffMatchPatch) patchMake2(text1 string, diffs []Diff) []Patch {
	patches := []Patch{}
	if len(diffs) == 0 {
		return patches // Get rid of the nil case.
	}

	patch := Patch{}
	charCount1 := 0 // Number of characters into the text1 string.
	charCount2 := 0 // Number of characters into the text2 string.
	// Start with text1 (prepatchText) and apply the diffs until we arrive
	// at text2 (postpatchText). We recreate the patches one by one to
	// determine context info.
	prepatchText := text1
	postpatchText := text1

	for i, aDiff := range diffs {
		if len(patch.diffs) == 0 && aDiff.Type != EQUAL {
			// A new patch starts here.
			patch.Start1 = charCount1
			patch.Start2 = charCount2
		}

		switch aDiff.Type {
		case INSERT:
			patch.diffs = append(patch.diffs, aDiff)
			patch.Length2 += len(aDiff.Text)
			postpatchText = postpatchText[:charCount2] + aDiff.Text + postpatchText[charCount2:]
		case DELETE:
			patch.Length1 += len(aDiff.Text)
			patch.diffs = append(patch.diffs, aDiff)
			postpatchText = postpatchText[:charCount2] + postpatchText[charCount2+len(aDiff.Text):]
		case EQUAL:
			if len(aDiff.Text) <= 2*dmp.PatchMargin &&
				len(patch.diffs) != 0 && i != len(diffs)-1 {
				// Small equality inside a patch.
				patch.diffs = append(patch.diffs, aDiff)
				patch.Length1 += len(aDiff.Text)
				patch.Length2 += len(aDiff.Text)
			}
			if len(aDiff.Text) >= 2*dmp.PatchMargin {
				// Time for a new patch.
				if len(patch.diffs) != 0 {
					patch = dmp.patchAddContext(patch, prepatchText)
					patches = append(patches, patch)
					patch = Patch{}
					// Unlike Unidiff, our patch lists have a rolling context.
					// Update prepatch text and position to reflect the
					// application of the just completed patch.
					prepatchText = postpatchText
					charCount1 = charCount2
				}
			}
		}

		// Update the current character count.
		if aDiff.Type != INSERT {
			charCount1 += len(aDiff.Text)
		}
		if aDiff.Type != DELETE {
			charCount2 += len(aDiff.Text)
		}
	}

	// Pick up the leftover patch if not empty.
	if len(patch.diffs) != 0 {
		patch = dmp.patchAddContext(patch, prepatchText)
		patches = append(patches, patch)
	}
	return patches
}

// PatchDeepCopy returns a copy that shares no state with the given
// patches.
func (dmp *DiffMatchPatch) PatchDeepCopy(patches []Patch) []Patch {
	patchesCopy := make([]Patch, 0, len(patches))
	for _, aPatch := range patches {
		patchCopy := Patch{
			diffs:   append([]Diff(nil), aPatch.diffs...),
			Start1:  aPatch.Start1,
			Start2:  aPatch.Start2,
			Length1: aPatch.Length1,
			Length2: aPatch.Length2,
		}
		patchesCopy = append(patchesCopy, patchCopy)
	}
	return patchesCopy
}

// PatchApply merges a set of patches onto the text. Returns the patched
// text and an array of true/false values indicating which patches were
// applied. The caller's patches are never mutated.
func (dmp *DiffMatchPatch) PatchApply(patches []Patch, text string) (string, []bool) {
	if len(patches) == 0 {
		return text, []bool{}
	}

	// Deep copy the patches so that no changes are made to the originals.
	patches = dmp.PatchDeepCopy(patches)

	nullPadding := dmp.PatchAddPadding(patches)
	text = nullPadding + text + nullPadding
	patches = dmp.PatchSplitMax(patches)

	// delta keeps track of the offset between the expected and actual
	// location of the previous patch. If there are patches expected at
	// positions 10 and 20, but the first patch was found at 12, delta is
	// 2 and the second patch has an effective expected position of 22.
	delta := 0
	results := make([]bool, len(patches))
	for x, aPatch := range patches {
		expectedLoc := aPatch.Start2 + delta
		text1 := dmp.DiffText1(aPatch.diffs)
		var startLoc int
		endLoc := -1
		if len(text1) > dmp.MatchMaxBits {
			// PatchSplitMax will only provide an oversized pattern in the
			// case of a monster delete.
			startLoc = dmp.matchLoc(text, text1[:dmp.MatchMaxBits], expectedLoc)
			if startLoc != -1 {
				endLoc = dmp.matchLoc(text,
					text1[len(text1)-dmp.MatchMaxBits:], expectedLoc+len(text1)-dmp.MatchMaxBits)
				if endLoc == -1 || startLoc >= endLoc {
					// Can't find valid trailing context. Drop this patch.
					startLoc = -1
				}
			}
		} else {
			startLoc = dmp.matchLoc(text, text1, expectedLoc)
		}
		if startLoc == -1 {
			// No match found.
			results[x] = false
			// Subtract the delta for this failed patch from subsequent patches.
			delta -= aPatch.Length2 - aPatch.Length1
			continue
		}
		// Found a match.
		results[x] = true
		delta = startLoc - expectedLoc
		var text2 string
		if endLoc == -1 {
			text2 = text[startLoc:min(startLoc+len(text1), len(text))]
		} else {
			text2 = text[startLoc:min(endLoc+dmp.MatchMaxBits, len(text))]
		}
		if text1 == text2 {
			// Perfect match, just shove the replacement text in.
			text = text[:startLoc] + dmp.DiffText2(aPatch.diffs) + text[startLoc+len(text1):]
			continue
		}
		// Imperfect match. Run a diff to get a framework of equivalent
		// indices.
		diffs := dmp.DiffMain(text1, text2, false)
		if len(text1) > dmp.MatchMaxBits &&
			float64(dmp.DiffLevenshtein(diffs))/float64(len(text1)) > dmp.PatchDeleteThreshold {
			// The end points match, but the content is unacceptably bad.
			results[x] = false
			continue
		}
		diffs = dmp.DiffCleanupSemanticLossless(diffs)
		index1 := 0
		for _, aDiff := range aPatch.diffs {
			if aDiff.Type != EQUAL {
				index2 := dmp.DiffXIndex(diffs, index1)
				switch aDiff.Type {
				case INSERT:
					text = text[:startLoc+index2] + aDiff.Text + text[startLoc+index2:]
				case DELETE:
					startIndex := startLoc + index2
					text = text[:startIndex] +
						text[startIndex+dmp.DiffXIndex(diffs, index1+len(aDiff.Text))-index2:]
				}
			}
			if aDiff.Type != DELETE {
				index1 += len(aDiff.Text)
			}
		}
	}
	// Strip the padding off.
	return text[len(nullPadding) : len(text)-len(nullPadding)], results
}

// matchLoc locates pattern for the patch applier; pattern length is
// bounded by PatchSplitMax, so a location failure is the only outcome
// of interest.
func (dmp *DiffMatchPatch) matchLoc(text, pattern string, loc int) int {
	at, err := dmp.MatchMain(text, pattern, loc)
	if err != nil {
		return -1
	}
	return at
}

// PatchAddPadding adds some padding on the start and end of the text so
// that edge hunks have context to match against. Returns the padding
// string added to each side. Intended to be called only from within
// PatchApply.
func (dmp *DiffMatchPatch) PatchAddPadding(patches []Patch) string {
	paddingLength := dmp.PatchMargin
	nullPadding := ""
	for x := 1; x <= paddingLength; x++ {
		nullPadding += string(rune(x))
	}

	// Bump all the patches forward.
	for i := range patches {
		patches[i].Start1 += paddingLength
		patches[i].Start2 += paddingLength
	}

	// Add some padding on start of first diff.
	first := &patches[0]
	if len(first.diffs) == 0 || first.diffs[0].Type != EQUAL {
		// Add nullPadding equality.
		first.diffs = append([]Diff{{EQUAL, nullPadding}}, first.diffs...)
		first.Start1 -= paddingLength // Should be 0.
		first.Start2 -= paddingLength // Should be 0.
		first.Length1 += paddingLength
		first.Length2 += paddingLength
	} else if paddingLength > len(first.diffs[0].Text) {
		// Grow first equality.
		extraLength := paddingLength - len(first.diffs[0].Text)
		first.diffs[0].Text = nullPadding[len(first.diffs[0].Text):] + first.diffs[0].Text
		first.Start1 -= extraLength
		first.Start2 -= extraLength
		first.Length1 += extraLength
		first.Length2 += extraLength
	}

	// Add some padding on end of last diff.
	last := &patches[len(patches)-1]
	if len(last.diffs) == 0 || last.diffs[len(last.diffs)-1].Type != EQUAL {
		// Add nullPadding equality.
		last.diffs = append(last.diffs, Diff{EQUAL, nullPadding})
		last.Length1 += paddingLength
		last.Length2 += paddingLength
	} else if paddingLength > len(last.diffs[len(last.diffs)-1].Text) {
		// Grow last equality.
		extraLength := paddingLength - len(last.diffs[len(last.diffs)-1].Text)
		last.diffs[len(last.diffs)-1].Text += nullPadding[:extraLength]
		last.Length1 += extraLength
		last.Length2 += extraLength
	}

	return nullPadding
}

// PatchSplitMax breaks up any patch covering more source text than the
// match algorithm's word width into a chain of smaller patches carrying
// rolling context. Intended to be called only from within PatchApply.
func (dmp *DiffMatchPatch) PatchSplitMax(patches []Patch) []Patch {
	patchSize := dmp.MatchMaxBits
	for x := 0; x < len(patches); x++ {
		if patches[x].Length1 <= patchSize {
			continue
		}
		bigpatch := patches[x]
		// Remove the big old patch.
		patches = append(patches[:x], patches[x+1:]...)
		x--

		start1 := bigpatch.Start1
		start2 := bigpatch.Start2
		precontext := ""
		for len(bigpatch.diffs) != 0 {
			// Create one of several smaller patches.
			patch := Patch{}
			empty := true
			patch.Start1 = start1 - len(precontext)
			patch.Start2 = start2 - len(precontext)
			if len(precontext) != 0 {
				patch.Length1 = len(precontext)
				patch.Length2 = len(precontext)
				patch.diffs = append(patch.diffs, Diff{EQUAL, precontext})
			}
			for len(bigpatch.diffs) != 0 && patch.Length1 < patchSize-dmp.PatchMargin {
				diffType := bigpatch.diffs[0].Type
				diffText := bigpatch.diffs[0].Text
				if diffType == INSERT {
					// Insertions are harmless.
					patch.Length2 += len(diffText)
					start2 += len(diffText)
					patch.diffs = append(patch.diffs, bigpatch.diffs[0])
					bigpatch.diffs = bigpatch.diffs[1:]
					empty = false
				} else if diffType == DELETE && len(patch.diffs) == 1 &&
					patch.diffs[0].Type == EQUAL && len(diffText) > 2*patchSize {
					// This is a large deletion. Let it pass in one chunk.
					patch.Length1 += len(diffText)
					start1 += len(diffText)
					empty = false
					patch.diffs = append(patch.diffs, Diff{diffType, diffText})
					bigpatch.diffs = bigpatch.diffs[1:]
				} else {
					// Deletion or equality. Only take as much as we can stomach.
					diffText = diffText[:min(len(diffText), patchSize-patch.Length1-dmp.PatchMargin)]

					patch.Length1 += len(diffText)
					start1 += len(diffText)
					if diffType == EQUAL {
						patch.Length2 += len(diffText)
						start2 += len(diffText)
					} else {
						empty = false
					}
					patch.diffs = append(patch.diffs, Diff{diffType, diffText})
					if diffText == bigpatch.diffs[0].Text {
						bigpatch.diffs = bigpatch.diffs[1:]
					} else {
						bigpatch.diffs[0].Text = bigpatch.diffs[0].Text[len(diffText):]
					}
				}
			}
			// Compute the head context for the next patch.
			precontext = dmp.DiffText2(patch.diffs)
			precontext = precontext[max(0, len(precontext)-dmp.PatchMargin):]

			// Append the end context for this patch.
			postcontext := dmp.DiffText1(bigpatch.diffs)
			if len(postcontext) > dmp.PatchMargin {
				postcontext = postcontext[:dmp.PatchMargin]
			}

			if len(postcontext) != 0 {
				patch.Length1 += len(postcontext)
				patch.Length2 += len(postcontext)
				if len(patch.diffs) != 0 && patch.diffs[len(patch.diffs)-1].Type == EQUAL {
					patch.diffs[len(patch.diffs)-1].Text += postcontext
				} else {
					patch.diffs = append(patch.diffs, Diff{EQUAL, postcontext})
				}
			}
			if !empty {
				x++
				patches = append(patches[:x], append([]Patch{patch}, patches[x:]...)...)
			}
		}
	}
	return patches
}

// PatchToText serializes a list of patches to their textual form.
func (dmp *DiffMatchPatch) PatchToText(patches []Patch) string {
	var text strings.Builder
	for _, aPatch := range patches {
		text.WriteString(aPatch.String())
	}
	return text.String()
}

var patchHeader = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@$`)

// PatchFromText parses a textual representation of patches and returns
// the Patch list.
func (dmp *DiffMatchPatch) PatchFromText(textline string) ([]Patch, error) {
	patches := []Patch{}
	if len(textline) == 0 {
		return patches, nil
	}
	text := strings.Split(textline, "\n")
	textPointer := 0

	for textPointer < len(text) {
		m := patchHeader.FindStringSubmatch(text[textPointer])
		if m == nil {
			return patches, fmt.Errorf("line %q: %w", text[textPointer], ErrInvalidPatch)
		}
		patch := Patch{}

		patch.Start1, _ = strconv.Atoi(m[1])
		if len(m[2]) == 0 {
			patch.Start1--
			patch.Length1 = 1
		} else if m[2] == "0" {
			patch.Length1 = 0
		} else {
			patch.Start1--
			patch.Length1, _ = strconv.Atoi(m[2])
		}

		patch.Start2, _ = strconv.Atoi(m[3])
		if len(m[4]) == 0 {
			patch.Start2--
			patch.Length2 = 1
		} else if m[4] == "0" {
			patch.Length2 = 0
		} else {
			patch.Start2--
			patch.Length2, _ = strconv.Atoi(m[4])
		}
		textPointer++

		for textPointer < len(text) {
			if len(text[textPointer]) == 0 {
				// Blank line? Whatever.
				textPointer++
				continue
			}
			sign := text[textPointer][0]
			if sign == '@' {
				// Start of next patch.
				break
			}
			line := text[textPointer][1:]
			line = strings.Replace(line, "+", "%2b", -1)
			line, err := url.QueryUnescape(line)
			if err != nil {
				return patches, fmt.Errorf("line %q: %w", text[textPointer], ErrIllegalEscape)
			}
			switch sign {
			case '-':
				patch.diffs = append(patch.diffs, Diff{DELETE, line})
			case '+':
				patch.diffs = append(patch.diffs, Diff{INSERT, line})
			case ' ':
				patch.diffs = append(patch.diffs, Diff{EQUAL, line})
			default:
				return patches, fmt.Errorf("mode %q in line %q: %w", string(sign), line, ErrInvalidMode)
			}
			textPointer++
		}

		patches = append(patches, patch)
	}
	return patches, nil
}
