package extract

import "regexp"

// Direction says whether a pattern hunts for the clock-in or the clock-out
// side of a record.
type Direction int

const (
	DirIn Direction = iota
	DirOut
)

// labeledPattern pairs a regex with the direction it extracts. The chain below
// is evaluated in order per direction and the first match wins, so the slice
// itself is the priority, not any control flow around it.
type labeledPattern struct {
	label string
	dir   Direction
	re    *regexp.Regexp
}

// patternChain mirrors the portal's observed renderings: keyword-prefixed
// times with a meridiem first, then time-then-keyword, then bare 24-hour
// forms. Patterns run against lowercased page text.
var patternChain = []labeledPattern{
	{"in-keyword-meridiem", DirIn, regexp.MustCompile(`(?:clock\s*in|in\s*time|start|entry)[\s:]*(\d{1,2}:\d{2}(?::\d{2})?\s*[ap]m)`)},
	{"meridiem-then-in", DirIn, regexp.MustCompile(`(\d{1,2}:\d{2}(?::\d{2})?\s*[ap]m)[\s,]*(?:clock\s*in|in|entry|today)`)},
	{"in-prefix-meridiem", DirIn, regexp.MustCompile(`in[\s:]*(\d{1,2}:\d{2}(?::\d{2})?\s*[ap]m)`)},
	{"meridiem-near-today", DirIn, regexp.MustCompile(`(\d{1,2}:\d{2}\s*[ap]m)[\s,]*.*(?:in|today)`)},
	{"in-keyword-24h", DirIn, regexp.MustCompile(`(?:clock\s*in|in\s*time|start|entry)[\s:]*(\d{1,2}:\d{2}(?::\d{2})?)`)},
	{"in-prefix-24h", DirIn, regexp.MustCompile(`in[\s:]+(\d{1,2}:\d{2}(?::\d{2})?)`)},

	{"out-keyword-meridiem", DirOut, regexp.MustCompile(`(?:clock\s*out|out\s*time|end|exit)[\s:]*(\d{1,2}:\d{2}(?::\d{2})?\s*[ap]m)`)},
	{"meridiem-then-out", DirOut, regexp.MustCompile(`(\d{1,2}:\d{2}(?::\d{2})?\s*[ap]m)[\s,]*(?:clock\s*out|out|exit)`)},
	{"out-prefix-meridiem", DirOut, regexp.MustCompile(`out[\s:]*(\d{1,2}:\d{2}(?::\d{2})?\s*[ap]m)`)},
	{"out-keyword-24h", DirOut, regexp.MustCompile(`(?:clock\s*out|out\s*time|end|exit)[\s:]*(\d{1,2}:\d{2}(?::\d{2})?)`)},
	{"out-prefix-24h", DirOut, regexp.MustCompile(`out[\s:]+(\d{1,2}:\d{2}(?::\d{2})?)`)},
}

// tokenPatterns recognize anything time-shaped for the last-resort heuristic.
// These run against the original (case-preserved) text.
var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}:\d{2}:\d{2}`),
	regexp.MustCompile(`\d{1,2}:\d{2}`),
	regexp.MustCompile(`\d{1,2}\.\d{2}`),
	regexp.MustCompile(`\d{1,2}:\d{2}\s*[AP]M`),
}
