package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/xuri/excelize/v2"
)

type Sheet struct {
	Title  string
	Header []string
	Rows   [][]string
}

// NewWorkbook lays out one worksheet per Sheet with a bold, filterable header row.
func NewWorkbook(sheets []Sheet) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Title); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Title); err != nil {
			return nil, fmt.Errorf("new sheet: %w", err)
		}

		for col, title := range sheet.Header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellStr(sheet.Title, cell, title); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		if len(sheet.Header) > 0 {
			end, _ := excelize.CoordinatesToCellName(len(sheet.Header), 1)
			_ = f.SetCellStyle(sheet.Title, "A1", end, bold)
			_ = f.AutoFilter(sheet.Title, "A1:"+end, nil)
		}

		for r, row := range sheet.Rows {
			for c, value := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellStr(sheet.Title, cell, value); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		for c := 1; c <= len(sheet.Header); c++ {
			width := len(sheet.Header[c-1])
			for r := 0; r < min(50, len(sheet.Rows)); r++ {
				if c-1 < len(sheet.Rows[r]) && len(sheet.Rows[r][c-1]) > width {
					width = len(sheet.Rows[r][c-1])
				}
			}
			name, _ := excelize.ColumnNumberToName(c)
			_ = f.SetColWidth(sheet.Title, name, name, clampWidth(float64(width)*0.9))
		}
	}
	return f, nil
}

// AthleteWorkbook exports profile, weights, assessments and tasks.
func AthleteWorkbook(detail *models.AthleteDetail) ([]byte, error) {
	if detail == nil || detail.Athlete == nil {
		return nil, fmt.Errorf("athlete detail is empty")
	}

	f, err := NewWorkbook([]Sheet{
		profileSheet(detail.Athlete),
		weightSheet(detail.WeightEntries),
		assessmentSheet(detail.Assessments),
		taskSheet(detail.Tasks),
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func profileSheet(a *models.AthleteProfile) Sheet {
	return Sheet{
		Title:  "Profile",
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"ID", strconv.FormatInt(a.ID, 10)},
			{"Name", a.Name},
			{"Age", intPtr(a.Age)},
			{"Gender", strPtr(a.Gender)},
			{"Weight category", strPtr(a.WeightCategory)},
			{"Sport level", strPtr(a.SportLevel)},
			{"Height (cm)", floatPtr(a.HeightCM)},
			{"Target weight", floatPtr(a.TargetWeight)},
		},
	}
}

func weightSheet(entries []models.WeightEntry) Sheet {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Date.String(),
			strconv.FormatFloat(e.Weight, 'f', 2, 64),
			strPtr(e.Timing),
			strPtr(e.Notes),
		})
	}
	return Sheet{Title: "Weights", Header: []string{"Date", "Weight", "Timing", "Notes"}, Rows: rows}
}

func assessmentSheet(assessments []models.WeeklyAssessment) Sheet {
	rows := make([][]string, 0)
	for _, a := range assessments {
		keys := make([]string, 0, len(a.Answers))
		for k := range a.Answers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rows = append(rows, []string{
				a.WeekStart.String(),
				k,
				answerString(a.Answers[k]),
				a.SubmittedAt.UTC().Format(time.RFC3339),
			})
		}
	}
	return Sheet{Title: "Assessments", Header: []string{"Week", "Question", "Answer", "Submitted at"}, Rows: rows}
}

func taskSheet(tasks []models.Task) Sheet {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		completedAt := ""
		if t.CompletedAt != nil {
			completedAt = t.CompletedAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []string{
			t.Name,
			strPtr(t.TaskType),
			strPtr(t.Target),
			strconv.Itoa(t.Progress),
			strconv.FormatBool(t.Completed),
			due,
			completedAt,
		})
	}
	return Sheet{
		Title:  "Tasks",
		Header: []string{"Name", "Type", "Target", "Progress", "Completed", "Due date", "Completed at"},
		Rows:   rows,
	}
}

func answerString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(data)
	}
}

func strPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intPtr(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func clampWidth(w float64) float64 {
	if w < 12 {
		return 12
	}
	if w > 40 {
		return 40
	}
	return w
}
