// Package diff computes, cleans, serializes, locates, and applies
// textual differences between two character sequences, after Neil
// Fraser's diff-match-patch design.
package diff

import "time"

// DiffMatchPatch holds the tunables shared by the diff, match, and
// patch engines.
//
// Set these on your DiffMatchPatch instance to override the defaults.
type DiffMatchPatch struct {
	// How long to map a diff before giving up (<= 0 for infinity).
	DiffTimeout time.Duration
	// Cost of an empty edit operation in terms of edit characters.
	DiffEditCost int
	// At what point is no match declared (0.0 = perfection, 1.0 = very loose).
	MatchThreshold float64
	// How far to search for a match (0 = exact location, 1000+ = broad match).
	// A match this many characters away from the expected location will add
	// 1.0 to the score (0.0 is a perfect match).
	MatchDistance int
	// When deleting a large block of text (over MatchMaxBits characters), how close
	// does the content have to match the expected contents. (0.0 =
	// perfection, 1.0 = very loose).  Note that MatchThreshold controls
	// how closely the end points of a delete need to match.
	PatchDeleteThreshold float64
	// Chunk size for context length.
	PatchMargin int
	// The number of bits in the match engine's state words.
	MatchMaxBits int
}

// New returns a DiffMatchPatch with the default tunables.
func New() *DiffMatchPatch {
	return &DiffMatchPatch{
		DiffTimeout:          time.Second,
		DiffEditCost:         4,
		MatchThreshold:       0.5,
		MatchDistance:        1000,
		PatchDeleteThreshold: 0.5,
		PatchMargin:          4,
		MatchMaxBits:         32,
	}
}
