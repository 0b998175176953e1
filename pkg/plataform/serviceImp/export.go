package serviceImp

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"plataform/pkg/apperr"
)

const exportSheet = "Plataformas"

var exportHeaders = []string{
	"ID", "Nome", "Data inicial", "Data final", "Informações da propriedade",
	"CNPJ", "Laboratório", "Observações", "Cadastrado em",
}

func (s *plataformSvc) ExportXLSX(ctx context.Context, w io.Writer) error {
	list, err := s.r.List(ctx)
	if err != nil {
		return err
	}

	xlsx := excelize.NewFile()
	defer xlsx.Close()
	if err := xlsx.SetSheetName("Sheet1", exportSheet); err != nil {
		return apperr.Wrapf(err, "rename sheet")
	}
	headerStyle, err := xlsx.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1A659E"}, Pattern: 1},
		Font:      &excelize.Font{Color: "FFFFFF", Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return apperr.Wrapf(err, "header style")
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := xlsx.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return apperr.Wrapf(err, "write header")
	}
	last, _ := excelize.ColumnNumberToName(len(exportHeaders))
	_ = xlsx.SetCellStyle(exportSheet, "A1", last+"1", headerStyle)
	_ = xlsx.SetColWidth(exportSheet, "B", last, 24)

	for i, p := range list {
		row := []any{
			p.ID, p.Name, p.StartDate[:min(10, len(p.StartDate))], p.EndDate[:min(10, len(p.EndDate))],
			p.PropertyInfoName, p.CNPJ, p.LaboratoryName, p.Notes,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xlsx.SetSheetRow(exportSheet, cell, &row); err != nil {
			return apperr.Wrapf(err, "write row %d", i+2)
		}
	}

	if _, err := xlsx.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
