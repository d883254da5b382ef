package extract

import "strings"

// documentText is the pre-split view of the raw text that strategies search.
// Blocks are paragraph-like runs separated by blank lines; the sectional
// fallback addresses them by fixed position.
type documentText struct {
	raw    string
	blocks []textBlock
}

type textBlock struct {
	lines []string
}

func newDocumentText(raw string) *documentText {
	doc := &documentText{raw: raw}

	var current textBlock
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current.lines) > 0 {
				doc.blocks = append(doc.blocks, current)
				current = textBlock{}
			}
			continue
		}
		current.lines = append(current.lines, line)
	}
	if len(current.lines) > 0 {
		doc.blocks = append(doc.blocks, current)
	}

	return doc
}

func (b textBlock) firstLine() string {
	if len(b.lines) == 0 {
		return ""
	}
	return b.lines[0]
}
