package site

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/planning-cli/internal/model"
)

// WriteCSV writes the records as UTF-8 CSV with a header row.
func WriteCSV(w io.Writer, records []model.SiteRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(model.Columns()); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return eris.Wrapf(err, "export: write csv row for lot %q", rec.LotID)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// WriteXLSX writes the records as a single-sheet XLSX workbook with a
// header row.
func WriteXLSX(w io.Writer, records []model.SiteRecord) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sites")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, col := range model.Columns() {
		header.AddCell().SetString(col)
	}
	for _, rec := range records {
		row := sheet.AddRow()
		for _, cell := range rec.Row() {
			row.AddCell().SetString(cell)
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}
