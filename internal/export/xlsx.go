// Package export writes daily logs to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
)

const (
	SheetFoods   = "Foods"
	SheetSummary = "Summary"
)

var (
	foodHeaders    = []string{"Date", "Name", "Grams", "Calories", "Protein (g)", "Carbs (g)", "Fiber (g)", "Fat (g)", "Net Carbs (g)"}
	summaryHeaders = []string{"Date", "Items", "Calories", "Protein (g)", "Carbs (g)", "Fiber (g)", "Fat (g)", "Net Carbs (g)", "Calories Target", "Remaining"}
)

// DailyLogWorkbook builds a workbook with one row per logged food and one
// summary row per day measured against tp.
func DailyLogWorkbook(logs []model.DailyLog, tp model.TrackerProfile) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetFoods); err != nil {
		return nil, fmt.Errorf("rename foods sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeRow(f, SheetFoods, 1, toCells(foodHeaders)); err != nil {
		return nil, err
	}
	if err := writeRow(f, SheetSummary, 1, toCells(summaryHeaders)); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetFoods, "A1", "I1", headerStyle)
	_ = f.SetCellStyle(SheetSummary, "A1", "J1", headerStyle)

	foodRow := 2
	for i, dl := range logs {
		for _, item := range dl.Foods {
			net := item.CarbsG - item.FiberG
			if net < 0 {
				net = 0
			}
			cells := []any{dl.Date, item.Name, item.Grams, item.Calories, item.ProteinG, item.CarbsG, item.FiberG, item.FatG, net}
			if err := writeRow(f, SheetFoods, foodRow, cells); err != nil {
				return nil, err
			}
			foodRow++
		}

		st := service.Progress(dl.Date, service.Totals(dl), tp)
		t := st.Totals
		cells := []any{dl.Date, len(dl.Foods), t.Calories, t.ProteinG, t.CarbsG, t.FiberG, t.FatG, t.NetCarbs, st.Targets.Calories, st.RemainingCalories}
		if err := writeRow(f, SheetSummary, i+2, cells); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(SheetFoods, "A", "A", 12)
	_ = f.SetColWidth(SheetFoods, "B", "B", 30)
	_ = f.SetColWidth(SheetFoods, "C", "I", 14)
	_ = f.SetColWidth(SheetSummary, "A", "J", 14)
	f.SetActiveSheet(0)
	return f, nil
}

// WriteDailyLogs streams the workbook for logs to w.
func WriteDailyLogs(w io.Writer, logs []model.DailyLog, tp model.TrackerProfile) error {
	f, err := DailyLogWorkbook(logs, tp)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolve cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
