package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/aryaman-sowilo/spine-attendance/internal/temporal"
)

// ExtractTimeline reads the portal's timeline markup: a list of entries, each
// a short blob containing the word "in" or "out" plus a sibling span holding a
// meridiem time. The entry's direction word decides the assignment, not its
// position, and the first entry seen per direction wins.
func ExtractTimeline(fragment string) Times {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return Times{}
	}

	var out Times
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			readTimelineEntry(n, &out)
			// Entries do not nest; no need to descend further.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if !out.Empty() {
		out.Source = SourceTimeline
	}
	return out
}

func readTimelineEntry(li *html.Node, out *Times) {
	entryText := strings.ToLower(nodeText(li))
	if !strings.Contains(entryText, "in") && !strings.Contains(entryText, "out") {
		return
	}

	for _, span := range findElements(li, "span") {
		text := strings.TrimSpace(nodeText(span))
		lower := strings.ToLower(text)
		if !strings.Contains(text, ":") || (!strings.Contains(lower, "am") && !strings.Contains(lower, "pm")) {
			continue
		}
		cleaned := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
		parsed, ok := temporal.ParseTime(cleaned)
		if !ok {
			continue
		}
		if strings.Contains(entryText, "in") && out.ClockIn == nil {
			out.ClockIn = &parsed
			out.ClockInLabel = "timeline-entry"
		} else if strings.Contains(entryText, "out") && out.ClockOut == nil {
			out.ClockOut = &parsed
			out.ClockOutLabel = "timeline-entry"
		}
	}
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func findElements(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}
