// Package export renders processed documents into an xlsx workbook for the
// reporting endpoint.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/ports"
)

const sheetName = "Documents"

var headerRow = []string{
	"Document ID",
	"Filename",
	"Document Type",
	"Status",
	"Confidence",
	"Validity",
	"Processed At",
}

type ExcelExporter struct {
	repo  ports.DocumentRepository
	limit int
}

func NewExcelExporter(repo ports.DocumentRepository, limit int) *ExcelExporter {
	return &ExcelExporter{repo: repo, limit: limit}
}

// Export writes a single-sheet workbook of processed documents, newest
// first, to w.
func (e *ExcelExporter) Export(ctx context.Context, w io.Writer) error {
	docs, err := e.repo.ListProcessed(ctx, e.limit)
	if err != nil {
		return fmt.Errorf("list processed documents: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		cell, _ := excelize.CoordinatesToCellName(len(headerRow), 1)
		_ = f.SetCellStyle(sheetName, "A1", cell, headerStyle)
	}

	for i, doc := range docs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d address: %w", i+2, err)
		}
		row := []any{
			doc.ID,
			doc.Filename,
			docTypeLabel(doc.DocType),
			string(doc.Status),
			doc.Confidence,
			validityLabel(doc),
			doc.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 38); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "G", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func docTypeLabel(kind domain.TypeKind) string {
	if kind == "" {
		return "unclassified"
	}
	return string(kind)
}

func validityLabel(doc domain.Document) string {
	if doc.Status != domain.StatusReady {
		return "n/a"
	}
	if doc.Valid {
		return "valid"
	}
	return "invalid"
}
