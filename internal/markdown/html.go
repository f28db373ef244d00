package markdown

import (
	"fmt"
	"html"
	"strings"
)

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #24292f; line-height: 1.6; }
h1, h2 { border-bottom: 1px solid #d0d7de; padding-bottom: .3em; }
pre { background: #f6f8fa; padding: 1em; border-radius: 6px; overflow-x: auto; font-size: 85%%; }
code { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace; }
blockquote { border-left: 4px solid #d0d7de; margin: 0; padding: 0 1em; color: #57606a; }
</style>
</head>
<body>
%s</body>
</html>
`

// RenderHTML renders a node sequence into a standalone styled HTML page.
func RenderHTML(title string, nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case KindHeading:
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", n.Level, html.EscapeString(n.Text), n.Level)
		case KindCodeBlock:
			b.WriteString("<pre><code>")
			for i, line := range n.Lines {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString(html.EscapeString(line))
			}
			b.WriteString("</code></pre>\n")
		case KindBlockquote:
			fmt.Fprintf(&b, "<blockquote>%s</blockquote>\n", html.EscapeString(n.Text))
		case KindBlank:
			// paragraphs already carry spacing
		case KindParagraph:
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(n.Text))
		}
	}
	return fmt.Sprintf(htmlShell, html.EscapeString(title), b.String())
}
