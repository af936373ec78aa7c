package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yourusername/ferdie-assistant/internal/domain/constants"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
)

var (
	reMarkdownLink  = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	reBareURL       = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>()\[\]]*[^\s<>()\[\].,!?;:…]`)
	reEmphasis      = regexp.MustCompile("\\*+|_{2,}|~~|`+")
	reUnderscoreEm  = regexp.MustCompile(`\b_([^_\n]+)_\b`)
	reHeading       = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+`)
	reSpaceRun      = regexp.MustCompile(`[ \t]+`)
	reSpaceBeforeP  = regexp.MustCompile(`[ \t]+([.,!?;:…])`)
	reBlankLines    = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
	reSentenceBreak = regexp.MustCompile(`[.!?…]+\s+`)
	rePlainAmount   = regexp.MustCompile(`^[0-9][0-9.,]*$`)
)

// PostProcessor cleans the raw model answer before it reaches the caller
type PostProcessor struct {
	// MaxSentences truncation limit; <= 0 disables truncation
	MaxSentences int
	// Sanitize enables markup/link stripping and truncation
	Sanitize bool
}

// NewPostProcessor with the default sentence limit
func NewPostProcessor(sanitize bool) PostProcessor {
	return PostProcessor{MaxSentences: constants.MaxReplySentences, Sanitize: sanitize}
}

// Process strips markup, truncates to MaxSentences and applies the price
// override: for a generic follow-up about a resolved product the model text
// is discarded and the catalog price is stated instead.
func (p PostProcessor) Process(raw string, resolved *entity.CatalogEntry, genericFollowUp bool) string {
	if genericFollowUp && resolved != nil {
		return PriceStatement(*resolved)
	}
	if !p.Sanitize {
		return strings.TrimSpace(raw)
	}
	return LimitSentences(StripMarkup(raw), p.MaxSentences)
}

// StripMarkup removes emphasis markers (words inside identifiers such as
// snake_case are left alone), turns [label](url) into label and
// drops bare URLs
func StripMarkup(s string) string {
	s = reMarkdownLink.ReplaceAllString(s, "$1")
	s = reBareURL.ReplaceAllString(s, "")
	s = reHeading.ReplaceAllString(s, "")
	s = reEmphasis.ReplaceAllString(s, "")
	s = reUnderscoreEm.ReplaceAllString(s, "$1")
	s = reSpaceRun.ReplaceAllString(s, " ")
	s = reSpaceBeforeP.ReplaceAllString(s, "$1")
	s = reBlankLines.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// SplitSentences splits on . ! ? … followed by whitespace; punctuation stays
// with its sentence
func SplitSentences(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for _, m := range reSentenceBreak.FindAllStringIndex(s, -1) {
		if sent := strings.TrimSpace(s[start:m[1]]); sent != "" {
			out = append(out, sent)
		}
		start = m[1]
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

// LimitSentences keeps the first max sentences joined by single spaces.
// Text with max or fewer sentences is returned unchanged.
func LimitSentences(s string, max int) string {
	if max <= 0 {
		return s
	}
	sentences := SplitSentences(s)
	if len(sentences) <= max {
		return s
	}
	return strings.Join(sentences[:max], " ")
}

// PriceStatement deterministic price sentence built from catalog data only
func PriceStatement(e entity.CatalogEntry) string {
	price := e.PriceText()
	if price == "" {
		return fmt.Sprintf("No momento não tenho o valor de %s disponível, mas posso verificar com a equipe Ferdie para você.", e.Title)
	}
	if rePlainAmount.MatchString(price) {
		price = "R$ " + price
	}
	return fmt.Sprintf("O valor de %s é %s.", e.Title, price)
}
