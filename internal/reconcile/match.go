package reconcile

import (
	"strings"
	"unicode/utf8"

	"github.com/scanpang/data-pipeline/internal/model"
)

// Matching thresholds.
const (
	minNameRunes    = 3 // building names must be longer than 2 characters
	minSharedTokens = 3
)

// MatchStats summarizes a Match run.
type MatchStats struct {
	Matched   int
	Unmatched int
}

// Match links tenants to buildings in place.
//
// Buildings are visited in order and each claims every still-unmatched
// tenant that satisfies one of two rules:
//   - the building name (longer than 2 characters) appears in the tenant address
//   - the building and tenant addresses share at least 3 whitespace tokens
//
// A claimed tenant is never revisited, so earlier buildings win ties.
// Buildings without an address are skipped.
func Match(buildings []model.Building, tenants []model.Tenant) MatchStats {
	for _, b := range buildings {
		if b.Address == "" {
			continue
		}
		bTokens := tokenSet(b.Address)
		nameUsable := utf8.RuneCountInString(b.Name) >= minNameRunes

		for i := range tenants {
			t := &tenants[i]
			if t.Matched() {
				continue
			}
			if nameUsable && strings.Contains(t.Address, b.Name) {
				t.BuildingID = b.ID
				continue
			}
			if t.Address != "" && sharedTokens(bTokens, t.Address) >= minSharedTokens {
				t.BuildingID = b.ID
			}
		}
	}

	var st MatchStats
	for i := range tenants {
		if tenants[i].Matched() {
			st.Matched++
		} else {
			st.Unmatched++
		}
	}
	return st
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func sharedTokens(set map[string]struct{}, s string) int {
	n := 0
	seen := make(map[string]struct{})
	for _, f := range strings.Fields(s) {
		if _, ok := set[f]; !ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		n++
	}
	return n
}
