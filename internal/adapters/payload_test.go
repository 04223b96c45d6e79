package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParse_XLSXPayload(t *testing.T) {
	payload := buildXLSX(t, [][]string{
		{"title", "description", "url"},
		{"ChatGPT", "Conversational AI assistant", "https://chat.openai.com"},
		{"Midjourney", "", ""}, // trailing cells dropped by Excel
	})

	adapter := NewHexofy()
	require.NoError(t, adapter.ValidateFormat(payload))

	records, rowErrs := adapter.Parse(payload)
	require.Empty(t, rowErrs)
	require.Len(t, records, 2)

	assert.Equal(t, "ChatGPT", records[0].Get(FieldName))
	assert.Equal(t, "https://chat.openai.com", records[0].Get(FieldWebsiteURL))
	assert.Equal(t, "Midjourney", records[1].Get(FieldName))
}

func TestParse_XLSXDetectedByMagic(t *testing.T) {
	payload := buildXLSX(t, [][]string{{"name", "tagline"}, {"ChatGPT", "AI assistant"}})

	assert.Equal(t, []byte{0x50, 0x4b, 0x03, 0x04}, payload[:4])

	records, rowErrs := NewProductHunt().Parse(payload)
	require.Empty(t, rowErrs)
	require.Len(t, records, 1)
	assert.Equal(t, "AI assistant", records[0].Get(FieldDescription))
}

func TestDecodePayload_GarbageZip(t *testing.T) {
	// ZIP magic without a real archive behind it.
	payload := []byte{0x50, 0x4b, 0x03, 0x04, 0xde, 0xad, 0xbe, 0xef}

	_, err := decodePayload(payload)
	require.Error(t, err)
}
