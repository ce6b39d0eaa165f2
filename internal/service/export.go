package service

import (
	"context"
	"fmt"
	"golf-coach/internal/analysis"
	"golf-coach/internal/model"
	"io"

	"github.com/xuri/excelize/v2"
)

const roundsSheet = "Rounds"

var roundColumns = []string{
	"Date", "Course", "Score", "Course Rating", "Slope", "Differential",
	"Fairways", "GIR", "Putts", "Penalties", "Source",
}

// Export writes every round of the user as an xlsx workbook, newest first.
func (s *RoundService) Export(ctx context.Context, userID int, w io.Writer) error {
	rounds, err := s.store.ListRounds(ctx, userID)
	if err != nil {
		return err
	}
	return WriteRoundsXLSX(w, rounds)
}

func WriteRoundsXLSX(w io.Writer, rounds []model.Round) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", roundsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]interface{}, len(roundColumns))
	for i, c := range roundColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(roundsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rounds {
		row := []interface{}{
			r.Date.Format(model.DateLayout),
			r.CourseName,
			r.TotalScore,
			optionalDecimal(r),
			optionalInt(r.SlopeRating),
			analysis.Fixed1(r.Differential),
			optionalInt(r.FairwaysHit),
			optionalInt(r.GreensInRegulation),
			optionalInt(r.TotalPutts),
			optionalInt(r.Penalties),
			string(r.Source),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(roundsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(roundsSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func optionalDecimal(r model.Round) interface{} {
	if !r.CourseRating.Valid {
		return ""
	}
	return analysis.Fixed1(r.CourseRating.Decimal)
}
