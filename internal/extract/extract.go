// Package extract pulls clock-in/clock-out facts out of the noisy text and
// markup the HR portal renders. It is heuristic by design: the portal's markup
// changes without notice, so extraction is an ordered pattern chain with a
// best-effort fallback rather than a strict parser.
package extract

import (
	"sort"
	"strings"

	"github.com/aryaman-sowilo/spine-attendance/internal/core/model"
	"github.com/aryaman-sowilo/spine-attendance/internal/temporal"
)

// Source tags which extraction path produced a result. SourceHeuristic results
// come from the earliest/latest-token fallback and carry lower confidence:
// with more than two incidental time tokens on the page the assignment can be
// wrong, and callers should treat it accordingly.
type Source string

const (
	SourceNone      Source = ""
	SourceLabeled   Source = "labeled"
	SourceTimeline  Source = "timeline"
	SourceHeuristic Source = "heuristic"
)

// Times is the outcome of one extraction pass. Either side may be absent.
type Times struct {
	ClockIn       *model.TimeOfDay
	ClockOut      *model.TimeOfDay
	ClockInLabel  string
	ClockOutLabel string
	Source        Source
}

// Empty reports whether the pass found nothing at all.
func (t Times) Empty() bool {
	return t.ClockIn == nil && t.ClockOut == nil
}

// ExtractTimes scans raw page text for clock-in and clock-out times. The
// labeled pattern chain runs first, one winner per direction. Only when
// neither direction matched does the fallback collect every time-shaped token
// and assign the earliest as clock-in and the latest as clock-out.
func ExtractTimes(raw string) Times {
	var out Times
	lower := strings.ToLower(raw)

	for _, p := range patternChain {
		switch p.dir {
		case DirIn:
			if out.ClockIn != nil {
				continue
			}
		case DirOut:
			if out.ClockOut != nil {
				continue
			}
		}
		m := p.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		parsed, ok := temporal.ParseTime(m[1])
		if !ok {
			continue
		}
		t := parsed
		if p.dir == DirIn {
			out.ClockIn = &t
			out.ClockInLabel = p.label
		} else {
			out.ClockOut = &t
			out.ClockOutLabel = p.label
		}
	}

	if !out.Empty() {
		out.Source = SourceLabeled
		return out
	}

	return fallbackTimes(raw)
}

// fallbackTimes is the lower-confidence path: gather all time-shaped tokens,
// deduplicate, order by parsed time, and take the extremes. A single token
// yields only a clock-in.
func fallbackTimes(raw string) Times {
	seen := make(map[string]bool)
	var parsed []model.TimeOfDay
	for _, re := range tokenPatterns {
		for _, m := range re.FindAllString(raw, -1) {
			if seen[m] {
				continue
			}
			seen[m] = true
			if t, ok := temporal.ParseTime(m); ok {
				parsed = append(parsed, t)
			}
		}
	}
	if len(parsed) == 0 {
		return Times{}
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	out := Times{Source: SourceHeuristic}
	first := parsed[0]
	out.ClockIn = &first
	if len(parsed) >= 2 {
		last := parsed[len(parsed)-1]
		out.ClockOut = &last
	}
	return out
}
