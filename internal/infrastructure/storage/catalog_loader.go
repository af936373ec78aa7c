package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
	"github.com/yourusername/ferdie-assistant/pkg/logger"
	"github.com/yourusername/ferdie-assistant/pkg/textnorm"
)

// source field names per catalog field, compared after textnorm.Normalize
var (
	idKeys       = []string{"id", "sku", "codigo", "handle"}
	titleKeys    = []string{"title", "titulo", "nome", "name", "produto"}
	priceKeys    = []string{"price", "preco", "valor"}
	imageKeys    = []string{"imagem", "image", "imagens", "images", "img", "foto"}
	categoryKeys = []string{"curso", "category", "categoria", "colecao"}
	tagKeys      = []string{"tags", "etiquetas"}

	// wrapper keys accepted when the JSON root is an object
	listKeys = []string{"produtos", "products", "items", "catalog", "catalogo"}
)

// RawRecord one product as found in the source, flexible schema
type RawRecord map[string]any

// LoadCatalog reads a .json or .xlsx catalog and normalizes it
func LoadCatalog(path string) ([]entity.CatalogEntry, error) {
	var (
		records []RawRecord
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSXFile(path)
	default:
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			records, err = ParseJSONRecords(data)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: catalog %s: %v", entity.ErrMissingConfiguration, path, err)
	}
	return NormalizeRecords(records), nil
}

// ParseJSONRecords accepts a JSON array of objects or an object wrapping one
// under a well-known key ("produtos", "products", ...)
func ParseJSONRecords(data []byte) ([]RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var list []any
	switch v := root.(type) {
	case []any:
		list = v
	case map[string]any:
		for _, k := range listKeys {
			if arr, ok := v[k].([]any); ok {
				list = arr
				break
			}
		}
		if list == nil {
			return nil, fmt.Errorf("no product list found in JSON object")
		}
	default:
		return nil, fmt.Errorf("catalog root must be an array")
	}

	records := make([]RawRecord, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			logger.Warn("catalog record skipped: not an object", "index", i)
			continue
		}
		records = append(records, RawRecord(obj))
	}
	return records, nil
}

func readXLSXFile(path string) ([]RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readXLSX(f)
}

// ParseXLSXRecords reads the first sheet; row 1 is the header
func ParseXLSXRecords(r io.Reader) ([]RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readXLSX(f)
}

func readXLSX(f *excelize.File) ([]RawRecord, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return []RawRecord{}, nil
	}

	header := rows[0]
	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := RawRecord{}
		empty := true
		for j, cell := range row {
			if j >= len(header) || strings.TrimSpace(header[j]) == "" {
				continue
			}
			rec[header[j]] = cell
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
		}
		if !empty {
			records = append(records, rec)
		}
	}
	return records, nil
}

// NormalizeRecords maps raw records to catalog entries. Records without a
// title are dropped; ids missing or repeated get a positional id.
func NormalizeRecords(records []RawRecord) []entity.CatalogEntry {
	entries := make([]entity.CatalogEntry, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for i, rec := range records {
		fields := foldKeys(rec)

		title := strings.TrimSpace(scalarString(pick(fields, titleKeys)))
		if title == "" {
			logger.Warn("catalog record skipped: empty title", "index", i)
			continue
		}

		id := strings.TrimSpace(scalarString(pick(fields, idKeys)))
		if _, dup := seen[id]; id == "" || dup {
			if id != "" {
				logger.Warn("duplicate catalog id, using positional id", "id", id, "index", i)
			}
			id = positionalID(i, seen)
		}
		seen[id] = struct{}{}

		entries = append(entries, entity.CatalogEntry{
			ID:       id,
			Title:    title,
			Price:    optionalString(scalarString(pick(fields, priceKeys))),
			Image:    firstImage(pick(fields, imageKeys)),
			Category: optionalString(scalarString(pick(fields, categoryKeys))),
			Tags:     tagList(pick(fields, tagKeys)),
		})
	}
	return entries
}

func positionalID(i int, seen map[string]struct{}) string {
	id := "item-" + strconv.Itoa(i+1)
	for n := 2; ; n++ {
		if _, taken := seen[id]; !taken {
			return id
		}
		id = "item-" + strconv.Itoa(i+1) + "-" + strconv.Itoa(n)
	}
}

func foldKeys(rec RawRecord) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		key := textnorm.Normalize(strings.TrimSpace(k))
		if _, exists := out[key]; !exists {
			out[key] = v
		}
	}
	return out
}

func pick(fields map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// scalarString renders strings and numbers verbatim; everything else is ""
func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// firstImage first non-empty segment of a ";"-delimited field (or list)
func firstImage(v any) *string {
	switch val := v.(type) {
	case string:
		for _, part := range strings.Split(val, ";") {
			if img := optionalString(part); img != nil {
				return img
			}
		}
	case []any:
		for _, item := range val {
			if img := firstImage(item); img != nil {
				return img
			}
		}
	}
	return nil
}

// tagList accepts a list or a comma-delimited string
func tagList(v any) []string {
	tags := []string{}
	switch val := v.(type) {
	case string:
		for _, part := range strings.Split(val, ",") {
			if t := strings.TrimSpace(part); t != "" {
				tags = append(tags, t)
			}
		}
	case []any:
		for _, item := range val {
			if t := strings.TrimSpace(scalarString(item)); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}
