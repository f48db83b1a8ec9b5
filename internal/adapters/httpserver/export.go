package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// handleExportProducts streams the full catalog as an .xlsx workbook for
// the admin console.
func (s *Server) handleExportProducts(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}

	products, err := s.catalog.ExportProducts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("export products")
		http.Error(w, "export", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		http.Error(w, "export", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Name", "Slug", "Base price", "Visibility", "Sizes", "Colors"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, p := range products {
		values := []any{
			p.ID,
			p.Name,
			p.Slug,
			p.BasePrice,
			string(p.Visibility),
			strings.Join(p.Sizes, ", "),
			strings.Join(p.Colors, ", "),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "products.xlsx"))
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("write xlsx")
	}
}
