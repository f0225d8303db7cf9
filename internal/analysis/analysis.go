// Package analysis accumulates what the tutor reports about a learner over a
// conversation: weak and strong areas, topics covered and the current level of
// understanding.
package analysis

import (
	"sort"
	"strings"
)

type Understanding string

const (
	UnderstandingWeak      Understanding = "weak"
	UnderstandingAverage   Understanding = "average"
	UnderstandingGood      Understanding = "good"
	UnderstandingExcellent Understanding = "excellent"
)

// ParseUnderstanding returns false for anything outside the four levels.
func ParseUnderstanding(s string) (Understanding, bool) {
	switch u := Understanding(strings.ToLower(strings.TrimSpace(s))); u {
	case UnderstandingWeak, UnderstandingAverage, UnderstandingGood, UnderstandingExcellent:
		return u, true
	}
	return "", false
}

// Signals is what a single assistant turn reports.
type Signals struct {
	WeakAreas            []string `json:"weak_areas"`
	StrongAreas          []string `json:"strong_areas"`
	TopicsCovered        []string `json:"topics_covered"`
	CurrentUnderstanding string   `json:"current_understanding,omitempty"`
}

type Analysis struct {
	WeakAreas            []string      `json:"weak_areas"`
	StrongAreas          []string      `json:"strong_areas"`
	TopicsCovered        []string      `json:"topics_covered"`
	CurrentUnderstanding Understanding `json:"current_understanding"`
}

func New() Analysis {
	return Analysis{
		WeakAreas:            []string{},
		StrongAreas:          []string{},
		TopicsCovered:        []string{},
		CurrentUnderstanding: UnderstandingAverage,
	}
}

// Merge unions the reported areas into a and overwrites the understanding only
// when the turn reported a valid level. Sets never shrink.
func (a *Analysis) Merge(s Signals) {
	a.WeakAreas = union(a.WeakAreas, s.WeakAreas)
	a.StrongAreas = union(a.StrongAreas, s.StrongAreas)
	a.TopicsCovered = union(a.TopicsCovered, s.TopicsCovered)

	if u, ok := ParseUnderstanding(s.CurrentUnderstanding); ok {
		a.CurrentUnderstanding = u
	} else if a.CurrentUnderstanding == "" {
		a.CurrentUnderstanding = UnderstandingAverage
	}
}

func (a Analysis) Clone() Analysis {
	return Analysis{
		WeakAreas:            append([]string{}, a.WeakAreas...),
		StrongAreas:          append([]string{}, a.StrongAreas...),
		TopicsCovered:        append([]string{}, a.TopicsCovered...),
		CurrentUnderstanding: a.CurrentUnderstanding,
	}
}

func (a Analysis) IsEmpty() bool {
	return len(a.WeakAreas) == 0 && len(a.StrongAreas) == 0 && len(a.TopicsCovered) == 0
}

// Combine folds several analyses oldest first, so the last one decides the
// understanding level.
func Combine(all ...Analysis) Analysis {
	out := New()
	for _, a := range all {
		out.Merge(Signals{
			WeakAreas:            a.WeakAreas,
			StrongAreas:          a.StrongAreas,
			TopicsCovered:        a.TopicsCovered,
			CurrentUnderstanding: string(a.CurrentUnderstanding),
		})
	}
	return out
}

// union dedupes on trimmed, case-folded text and keeps the first spelling seen.
func union(have, add []string) []string {
	seen := make(map[string]struct{}, len(have)+len(add))
	out := make([]string, 0, len(have)+len(add))
	for _, list := range [][]string{have, add} {
		for _, v := range list {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
