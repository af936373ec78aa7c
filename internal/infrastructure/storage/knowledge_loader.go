package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
)

// LoadKnowledge reads the site knowledge: a JSON object of url -> page text
// (key order kept) or any other file used verbatim as plain text
func LoadKnowledge(path string) (entity.Knowledge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Knowledge{}, fmt.Errorf("%w: knowledge %s: %v", entity.ErrMissingConfiguration, path, err)
	}
	k, err := ParseKnowledge(data)
	if err != nil {
		return entity.Knowledge{}, fmt.Errorf("%w: knowledge %s: %v", entity.ErrMissingConfiguration, path, err)
	}
	return k, nil
}

// ParseKnowledge see LoadKnowledge
func ParseKnowledge(data []byte) (entity.Knowledge, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return entity.Knowledge{Raw: string(trimmed)}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return entity.Knowledge{}, err
	}

	var pages []entity.KnowledgePage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return entity.Knowledge{}, err
		}
		source, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return entity.Knowledge{}, fmt.Errorf("page %q: %w", source, err)
		}
		var content string
		if err := json.Unmarshal(raw, &content); err != nil {
			// non-string values are kept as compact JSON
			var buf bytes.Buffer
			if cerr := json.Compact(&buf, raw); cerr != nil {
				return entity.Knowledge{}, fmt.Errorf("page %q: %w", source, cerr)
			}
			content = buf.String()
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		pages = append(pages, entity.KnowledgePage{Source: source, Content: content})
	}
	if _, err := dec.Token(); err != nil {
		return entity.Knowledge{}, err
	}
	return entity.Knowledge{Pages: pages}, nil
}

// LoadPrompt reads the system prompt file
func LoadPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: prompt %s: %v", entity.ErrMissingConfiguration, path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
