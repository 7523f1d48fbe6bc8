package inventory

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook собирает файл остатков в памяти: headerOffset строк шапки,
// затем строка заголовка и строки товаров
func buildWorkbook(t *testing.T, headerOffset int, rows [][]string) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	for i := 0; i < headerOffset; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetCellValue(sheet, cell, fmt.Sprintf("шапка %d", i+1)))
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, headerOffset+r+1)
			assert.NoError(t, err)
			assert.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf.Bytes()
}

func TestParse(t *testing.T) {
	Assert := assert.New(t)

	data := buildWorkbook(t, 17, [][]string{
		{"№", ColumnCode, "Наименование", ColumnQuantity, ColumnPrice},
		{"1", "71234", "Часы наручные", ">10", "5'990.00 руб."},
		{"2", "71235", "Часы наручные", "1", "12'490.00 руб."},
		{"", "", "", "", ""}, //пустая строка в конце файла
	})

	records, err := Parse(data, 17)
	Assert.NoError(err)

	Assert.Equal([]Record{
		{Code: "71234", Quantity: ">10", Price: "5'990.00 руб."},
		{Code: "71235", Quantity: "1", Price: "12'490.00 руб."},
	}, records)
}

func TestParseMissingColumn(t *testing.T) {
	Assert := assert.New(t)

	data := buildWorkbook(t, 2, [][]string{
		{ColumnCode, ColumnQuantity}, //нет колонки с ценой
		{"71234", "3"},
	})

	_, err := Parse(data, 2)
	Assert.Error(err)
}

func TestParseNoHeaderRow(t *testing.T) {
	Assert := assert.New(t)

	data := buildWorkbook(t, 1, [][]string{
		{ColumnCode, ColumnQuantity, ColumnPrice},
	})

	_, err := Parse(data, 17)
	Assert.Error(err)
}

func TestUnzip(t *testing.T) {
	Assert := assert.New(t)

	workbook := buildWorkbook(t, 0, [][]string{
		{ColumnCode, ColumnQuantity, ColumnPrice},
		{"71234", "2", "100.00"},
	})

	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	w, err := zw.Create("ostatki.xlsx")
	Assert.NoError(err)
	_, err = w.Write(workbook)
	Assert.NoError(err)
	Assert.NoError(zw.Close())

	data, err := Unzip(archive.Bytes(), "ostatki.xlsx")
	Assert.NoError(err)
	Assert.Equal(workbook, data)

	records, err := Parse(data, 0)
	Assert.NoError(err)
	Assert.Len(records, 1)
	Assert.Equal("71234", records[0].Code)
}

func TestUnzipMissingFile(t *testing.T) {
	Assert := assert.New(t)

	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	_, err := zw.Create("другой_файл.txt")
	Assert.NoError(err)
	Assert.NoError(zw.Close())

	_, err = Unzip(archive.Bytes(), "ostatki.xlsx")
	Assert.Error(err)
}
