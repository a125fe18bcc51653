package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup returns the plain text content of s. Display text coming from
// a data source may carry markup; only its text is rendered in the terminal.
// Input without any tags is returned unchanged.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Unparseable input degrades to the raw string
		return s
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String())
}
