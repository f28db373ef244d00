// Package markdown parses the small Markdown subset used by generated
// documentation into a flat node sequence. Both the HTML templater and the
// DOCX emitter consume the same sequence so the two renderings cannot
// diverge.
package markdown

import "strings"

// NodeKind discriminates parsed nodes.
type NodeKind int

const (
	KindHeading NodeKind = iota
	KindCodeBlock
	KindBlockquote
	KindBlank
	KindParagraph
)

// Node is one parsed block. Headings carry Level 1-6 and Text; code blocks
// carry their literal Lines; everything else carries Text.
type Node struct {
	Kind  NodeKind
	Level int
	Text  string
	Lines []string
}

// Parse walks src line by line. Recognized markers: "#".."######" headings,
// ``` fences, "> " blockquotes, and blank lines. Any other non-empty line
// becomes a paragraph with its text unchanged — inline emphasis, links, and
// list markers are treated as literal text.
func Parse(src string) []Node {
	var nodes []Node
	var code []string
	inFence := false

	for _, line := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, "```") {
			if inFence {
				nodes = append(nodes, Node{Kind: KindCodeBlock, Lines: code})
				code = nil
				inFence = false
			} else {
				inFence = true
			}
			continue
		}
		if inFence {
			code = append(code, line)
			continue
		}

		if level, text, ok := heading(line); ok {
			nodes = append(nodes, Node{Kind: KindHeading, Level: level, Text: text})
			continue
		}
		if strings.HasPrefix(line, "> ") {
			nodes = append(nodes, Node{Kind: KindBlockquote, Text: line[2:]})
			continue
		}
		if strings.TrimSpace(line) == "" {
			nodes = append(nodes, Node{Kind: KindBlank})
			continue
		}
		nodes = append(nodes, Node{Kind: KindParagraph, Text: line})
	}

	// Unterminated fence at EOF: flush what we collected.
	if inFence && len(code) > 0 {
		nodes = append(nodes, Node{Kind: KindCodeBlock, Lines: code})
	}

	return nodes
}

func heading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	if level == len(line) {
		return level, "", true
	}
	if line[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(line[level+1:]), true
}
