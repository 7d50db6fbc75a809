package portfolio

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	domainerrors "cardfolio/internal/errors"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Cards"

// ExportCSV streams the data file as stored.
func (s *service) ExportCSV(ctx context.Context, w io.Writer) (err error) {
	defer s.track("export_csv", time.Now(), &err)
	return s.repo.Export(ctx, w)
}

// ExportXLSX writes the same rows and columns as ExportCSV into a single
// worksheet, every cell as text.
func (s *service) ExportXLSX(ctx context.Context, w io.Writer) (err error) {
	defer s.track("export_xlsx", time.Now(), &err)

	var buf bytes.Buffer
	if err := s.repo.Export(ctx, &buf); err != nil {
		return err
	}
	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return domainerrors.IO("read export", err)
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = domainerrors.IO("close workbook", cerr)
		}
	}()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return domainerrors.IO("build workbook", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return domainerrors.IO("build workbook", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return domainerrors.IO("build workbook", fmt.Errorf("row %d: %w", i+1, err))
		}
	}
	if len(rows) > 0 {
		if err := f.SetPanes(exportSheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return domainerrors.IO("build workbook", err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return domainerrors.IO("write workbook", err)
	}
	return nil
}
