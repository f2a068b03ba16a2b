// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package filter

import (
	"maps"

	"github.com/tomtom215/coursefinder/internal/courseview"
)

// Unset is the "no filter" option. It leads every option list, and selecting
// it clears the dimension.
const Unset = ""

// State holds the current selection per dimension. The zero value has every
// dimension unset. A State belongs to one session.
type State struct {
	Selections map[Dimension]string `json:"selections,omitempty"`
}

// Selected returns the selection for d, or Unset.
func (s *State) Selected(d Dimension) string {
	mustValid(d)
	return s.Selections[d]
}

// IsSet reports whether d has a selection.
func (s *State) IsSet(d Dimension) bool {
	return s.Selected(d) != Unset
}

// Clone returns an independent copy.
func (s *State) Clone() State {
	return State{Selections: maps.Clone(s.Selections)}
}

// Select sets state[d] to value, or clears it when value is Unset. It does
// not recompute options or check legality; call Reconcile afterwards.
func Select(state *State, d Dimension, value string) {
	mustValid(d)
	if value == Unset {
		delete(state.Selections, d)
		return
	}
	if state.Selections == nil {
		state.Selections = make(map[Dimension]string, len(Dimensions))
	}
	state.Selections[d] = value
}

// matches reports whether g satisfies every selection in state except skip.
func matches(g *courseview.GroupedCourse, state *State, skip Dimension) bool {
	for _, d := range Dimensions {
		if d == skip {
			continue
		}
		want := state.Selections[d]
		if want == Unset {
			continue
		}
		if valueOf(g, d) != want {
			return false
		}
	}
	return true
}

// LegalOptions returns the values of d that remain reachable under every
// other dimension's selection, led by Unset. Values keep first-seen order and
// appear once. Blank values are not offered: they cannot be told apart from
// Unset. The selection of d itself never constrains its own options.
func LegalOptions(view []courseview.GroupedCourse, state State, d Dimension) []string { //nolint:gocritic // hugeParam: State is a single map header
	mustValid(d)

	options := []string{Unset}
	seen := make(map[string]struct{})
	for i := range view {
		g := &view[i]
		if !matches(g, &state, d) {
			continue
		}
		v := valueOf(g, d)
		if v == Unset {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		options = append(options, v)
	}
	return options
}

// Apply returns the courses matching every selection (exact match, AND),
// in view order. Unset dimensions impose no constraint.
func Apply(view []courseview.GroupedCourse, state State) []courseview.GroupedCourse { //nolint:gocritic // hugeParam: State is a single map header
	out := make([]courseview.GroupedCourse, 0, len(view))
	for i := range view {
		if matches(&view[i], &state, "") {
			out = append(out, view[i])
		}
	}
	return out
}

// Reconcile clears selections until every remaining selection is a member of
// its own LegalOptions, and returns the cleared dimensions in evaluation order.
//
// Selections are admitted one at a time: pinned dimensions first, in the
// order given, then the rest in evaluation order. A selection survives when
// at least one course matches it together with everything admitted before
// it. Callers pin the dimension the user just changed so the latest choice
// wins over older ones it conflicts with.
func Reconcile(view []courseview.GroupedCourse, state *State, pinned ...Dimension) []Dimension {
	// Decoded states may carry keys from an older dimension set.
	for d, v := range state.Selections {
		if !d.Valid() || v == Unset {
			delete(state.Selections, d)
		}
	}
	if len(state.Selections) == 0 {
		return nil
	}

	order := make([]Dimension, 0, len(Dimensions)+len(pinned))
	order = append(order, pinned...)
	order = append(order, Dimensions[:]...)

	admitted := State{Selections: make(map[Dimension]string, len(state.Selections))}
	visited := make(map[Dimension]bool, len(Dimensions))
	rejected := make(map[Dimension]bool)
	for _, d := range order {
		mustValid(d)
		if visited[d] {
			continue
		}
		visited[d] = true

		selected := state.Selections[d]
		if selected == Unset {
			continue
		}
		admitted.Selections[d] = selected
		if !anyMatch(view, &admitted) {
			delete(admitted.Selections, d)
			rejected[d] = true
		}
	}

	var reset []Dimension
	for _, d := range Dimensions {
		if rejected[d] {
			delete(state.Selections, d)
			reset = append(reset, d)
		}
	}
	return reset
}

// anyMatch reports whether at least one course satisfies every selection.
func anyMatch(view []courseview.GroupedCourse, state *State) bool {
	for i := range view {
		if matches(&view[i], state, "") {
			return true
		}
	}
	return false
}

// Consistent reports whether every selection is currently legal.
func Consistent(view []courseview.GroupedCourse, state State) bool { //nolint:gocritic // hugeParam: State is a single map header
	for _, d := range Dimensions {
		selected := state.Selections[d]
		if selected != Unset && !contains(LegalOptions(view, state, d), selected) {
			return false
		}
	}
	return true
}

// DimensionOptions is the option list of one dimension, as presented.
type DimensionOptions struct {
	Dimension Dimension `json:"dimension"`
	Label     string    `json:"label"`
	Selected  string    `json:"selected"`
	Options   []string  `json:"options"`
}

// AllOptions computes LegalOptions for every dimension in evaluation order.
func AllOptions(view []courseview.GroupedCourse, state State) []DimensionOptions { //nolint:gocritic // hugeParam: State is a single map header
	out := make([]DimensionOptions, 0, len(Dimensions))
	for _, d := range Dimensions {
		out = append(out, DimensionOptions{
			Dimension: d,
			Label:     d.Label(),
			Selected:  state.Selections[d],
			Options:   LegalOptions(view, state, d),
		})
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
