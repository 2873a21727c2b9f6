package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/patchlive/patchlive/diff"
)

// tunables mirrors the engine configuration; unset fields keep the
// engine defaults.
type tunables struct {
	DiffTimeoutSeconds   *float64 `toml:"diff_timeout"`
	DiffEditCost         *int     `toml:"diff_edit_cost"`
	MatchThreshold       *float64 `toml:"match_threshold"`
	MatchDistance        *int     `toml:"match_distance"`
	PatchDeleteThreshold *float64 `toml:"patch_delete_threshold"`
	PatchMargin          *int     `toml:"patch_margin"`
	MatchMaxBits         *int     `toml:"match_max_bits"`
}

// newEngine builds a DiffMatchPatch, optionally overridden by a TOML
// tunables file.
func newEngine(configPath string) (*diff.DiffMatchPatch, error) {
	dmp := diff.New()
	if configPath == "" {
		return dmp, nil
	}

	var t tunables
	if _, err := toml.DecodeFile(configPath, &t); err != nil {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	}
	applyTunables(dmp, &t)
	return dmp, nil
}

func applyTunables(dmp *diff.DiffMatchPatch, t *tunables) {
	if t.DiffTimeoutSeconds != nil {
		dmp.DiffTimeout = time.Duration(*t.DiffTimeoutSeconds * float64(time.Second))
	}
	if t.DiffEditCost != nil {
		dmp.DiffEditCost = *t.DiffEditCost
	}
	if t.MatchThreshold != nil {
		dmp.MatchThreshold = *t.MatchThreshold
	}
	if t.MatchDistance != nil {
		dmp.MatchDistance = *t.MatchDistance
	}
	if t.PatchDeleteThreshold != nil {
		dmp.PatchDeleteThreshold = *t.PatchDeleteThreshold
	}
	if t.PatchMargin != nil {
		dmp.PatchMargin = *t.PatchMargin
	}
	if t.MatchMaxBits != nil {
		dmp.MatchMaxBits = *t.MatchMaxBits
	}
}
