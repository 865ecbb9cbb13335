package tabular

import (
	"bytes"
	"strings"
	"testing"

	"calltime-backend/internal/normalize"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"First Name,Last Name,Email,Suggested Ask",
		"Jamie,Rivera,jamie@example.com,\"$1,000\"",
		"Alex,Chen,alex@example.com,500",
	}, "\n")

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Jamie", rows[0].Field(normalize.FieldFirstName))
	require.Equal(t, "$1,000", rows[0].Field(normalize.FieldSuggestedAsk))
	require.Equal(t, "alex@example.com", rows[1].Field(normalize.FieldEmail))
}

func TestParseCSVRaggedRows(t *testing.T) {
	input := strings.Join([]string{
		"First Name,Last Name,Email",
		"Jamie,Rivera",
		"Alex,Chen,alex@example.com,stray-extra-cell",
	}, "\n")

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "", rows[0].Field(normalize.FieldEmail))
	require.Equal(t, "alex@example.com", rows[1].Field(normalize.FieldEmail))
}

func TestParseCSVDropsEmptyRows(t *testing.T) {
	input := strings.Join([]string{
		"First Name,Last Name",
		"Jamie,Rivera",
		",",
		"   ,",
		"Alex,Chen",
	}, "\n")

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("First Name,Last Name\n"))
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"First Name", "Last Name", "Email", "2022 Candidate", "2022 Amount"},
		{"Jamie", "Rivera", "jamie@example.com", "Ortiz", 250.0},
		{"Alex", "Chen", "alex@example.com", "", nil},
	}
	for i, row := range cells {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ParseXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Jamie", rows[0].Field(normalize.FieldFirstName))
	require.Equal(t, "jamie@example.com", rows[0].Field(normalize.FieldEmail))
	require.Equal(t, "Ortiz", rows[0].Get("2022 Candidate"))
	require.Equal(t, "alex@example.com", rows[1].Field(normalize.FieldEmail))
}

func TestParseFileDispatch(t *testing.T) {
	csv := "First Name\nJamie\n"

	rows, err := ParseFile("donors.CSV", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, err = ParseFile("export.txt", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = ParseFile("donors.pdf", strings.NewReader(csv))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported file type")
}
