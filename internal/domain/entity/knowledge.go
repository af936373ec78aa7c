package entity

import "strings"

// KnowledgePage text scraped from one page of the store site
type KnowledgePage struct {
	Source  string
	Content string
}

// Knowledge fixed site text handed to the model on every turn.
// Either Pages (JSON source keyed by URL) or Raw (plain text source) is set.
type Knowledge struct {
	Pages []KnowledgePage
	Raw   string
}

// Text renders the knowledge block for the system message
func (k Knowledge) Text() string {
	if len(k.Pages) == 0 {
		return strings.TrimSpace(k.Raw)
	}
	blocks := make([]string, 0, len(k.Pages))
	for _, p := range k.Pages {
		blocks = append(blocks, "📄 Página: "+p.Source+"\n"+p.Content)
	}
	return strings.Join(blocks, "\n\n")
}

// SourceCount number of pages, 1 for a non-empty plain text blob
func (k Knowledge) SourceCount() int {
	if len(k.Pages) > 0 {
		return len(k.Pages)
	}
	if strings.TrimSpace(k.Raw) != "" {
		return 1
	}
	return 0
}
