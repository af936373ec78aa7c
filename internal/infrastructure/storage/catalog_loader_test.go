package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/ferdie-assistant/internal/domain/entity"
)

func TestNormalizeRecordsDefaults(t *testing.T) {
	records, err := ParseJSONRecords([]byte(`[
		{"id": "A42", "titulo": "Anel Lua", "preço": 350, "imagem": "a.jpg; b.jpg", "curso": "Anéis"},
		{"nome": "Colar Sol", "tags": "ouro, dourado ,", "valor": "R$ 420,00"},
		{"title": "  ", "id": "X"},
		{"Title": "Brinco", "tags": ["prata", 925], "images": ["", "c.jpg"]}
	]`))
	require.NoError(t, err)

	entries := NormalizeRecords(records)
	require.Len(t, entries, 3)

	anel := entries[0]
	assert.Equal(t, "A42", anel.ID)
	assert.Equal(t, "Anel Lua", anel.Title)
	require.NotNil(t, anel.Price)
	assert.Equal(t, "350", *anel.Price)
	require.NotNil(t, anel.Image)
	assert.Equal(t, "a.jpg", *anel.Image)
	assert.Equal(t, "Anéis", *anel.Category)
	assert.Equal(t, []string{}, anel.Tags)

	colar := entries[1]
	assert.Equal(t, "item-2", colar.ID)
	assert.Equal(t, "R$ 420,00", *colar.Price)
	assert.Nil(t, colar.Image)
	assert.Nil(t, colar.Category)
	assert.Equal(t, []string{"ouro", "dourado"}, colar.Tags)

	brinco := entries[2]
	assert.Equal(t, "item-4", brinco.ID)
	assert.Nil(t, brinco.Price)
	assert.Equal(t, "c.jpg", *brinco.Image)
	assert.Equal(t, []string{"prata", "925"}, brinco.Tags)
}

func TestNormalizeRecordsUniqueIDs(t *testing.T) {
	entries := NormalizeRecords([]RawRecord{
		{"id": "item-2", "title": "Um"},
		{"title": "Dois"},
		{"id": "item-2", "title": "Três"},
	})
	require.Len(t, entries, 3)

	seen := map[string]bool{}
	for _, e := range entries {
		assert.False(t, seen[e.ID], e.ID)
		seen[e.ID] = true
	}
	assert.Equal(t, "item-2", entries[0].ID)
	assert.Equal(t, "item-2-2", entries[1].ID)
	assert.Equal(t, "item-3", entries[2].ID)
}

func TestParseJSONRecordsShapes(t *testing.T) {
	records, err := ParseJSONRecords([]byte(`{"produtos": [{"title": "A"}, 5]}`))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = ParseJSONRecords([]byte(`{"foo": []}`))
	assert.Error(t, err)
	_, err = ParseJSONRecords([]byte(`"x"`))
	assert.Error(t, err)
	_, err = ParseJSONRecords([]byte(`[`))
	assert.Error(t, err)
}

func TestParseJSONRecordsKeepsLiteralPrice(t *testing.T) {
	records, err := ParseJSONRecords([]byte(`[{"title": "A", "price": 1299.90}]`))
	require.NoError(t, err)
	entries := NormalizeRecords(records)
	require.Len(t, entries, 1)
	assert.Equal(t, "1299.90", *entries[0].Price)
}

func buildWorkbook(t *testing.T, rows [][]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	return f
}

func TestParseXLSXRecords(t *testing.T) {
	f := buildWorkbook(t, [][]any{
		{"ID", "Nome", "Preço", "Imagem", "Curso", "Tags"},
		{"A42", "Anel Lua", "350", "a.jpg; b.jpg", "Anéis", "prata, lua"},
		{"", "", "", "", "", ""},
		{"", "Colar Sol", "420", "", "", ""},
	})
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err := ParseXLSXRecords(&buf)
	require.NoError(t, err)
	entries := NormalizeRecords(records)
	require.Len(t, entries, 2)

	assert.Equal(t, "A42", entries[0].ID)
	assert.Equal(t, "a.jpg", *entries[0].Image)
	assert.Equal(t, []string{"prata", "lua"}, entries[0].Tags)
	assert.Equal(t, "Colar Sol", entries[1].Title)
	assert.Equal(t, "item-2", entries[1].ID)
	assert.Equal(t, []string{}, entries[1].Tags)
}

func TestLoadCatalogFiles(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "produtos.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"id":"1","title":"Anel"}]`), 0o644))
	entries, err := LoadCatalog(jsonPath)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	xlsxPath := filepath.Join(dir, "produtos.xlsx")
	f := buildWorkbook(t, [][]any{{"title", "price"}, {"Colar", "99"}})
	require.NoError(t, f.SaveAs(xlsxPath))
	require.NoError(t, f.Close())
	entries, err = LoadCatalog(xlsxPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "99", *entries[0].Price)

	_, err = LoadCatalog(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, entity.ErrMissingConfiguration))
}
