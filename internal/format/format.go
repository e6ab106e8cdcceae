package format

import (
	"strings"

	"golang.org/x/net/html"
)

// Excerpt extracts plain text from an HTML fragment and trims it to max
// runes on a word boundary, for meta descriptions derived from content
// bodies.
func Excerpt(fragment string, max int) string {
	text := plainText(fragment)
	if max <= 0 || len([]rune(text)) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:") + "…"
}

func plainText(fragment string) string {
	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return collapseSpace(fragment)
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return collapseSpace(sb.String())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PublishDate normalizes an authored publish date ("2024-03-05") for
// display; unknown layouts pass through unchanged.
func PublishDate(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 && v[4] == '-' && v[7] == '-' {
		return v[:10]
	}
	return v
}
