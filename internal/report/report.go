// Package report exports a learner's progress as an Excel workbook.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/cyberguard/internal/progress"
	"github.com/abhisek/cyberguard/internal/simulation"
	"github.com/abhisek/cyberguard/internal/store"
)

// Sheet names, in workbook order.
const (
	SheetSummary      = "Summary"
	SheetResults      = "Results"
	SheetAchievements = "Achievements"
	SheetHistory      = "History"
)

// Input is everything that goes into a workbook.
type Input struct {
	Name     string
	Email    string
	Progress *progress.UserProgress
	History  []store.Attempt
	Catalog  *simulation.Catalog
	Exported time.Time
}

// Write renders in as an xlsx workbook to w.
func Write(w io.Writer, in Input) error {
	f, err := build(in)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Save renders in to the file at path.
func Save(path string, in Input) error {
	f, err := build(in)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func build(in Input) (*excelize.File, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetSummary, summaryRows(in)},
		{SheetResults, resultRows(in)},
		{SheetAchievements, achievementRows(in.Progress)},
		{SheetHistory, historyRows(in)},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.rows, header); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}, header int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", name, i+1, err)
		}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, "A1", last, header); err != nil {
			return fmt.Errorf("style %s header: %w", name, err)
		}
	}
	if err := f.SetColWidth(name, "A", "A", 28); err != nil {
		return fmt.Errorf("size %s columns: %w", name, err)
	}
	return nil
}

func summaryRows(in Input) [][]interface{} {
	p := in.Progress
	rows := [][]interface{}{
		{"Field", "Value"},
		{"Learner", in.Name},
		{"Email", in.Email},
		{"Exported", formatTime(in.Exported)},
		{"Simulations completed", p.TotalSimulationsCompleted},
		{"Average score (%)", p.AverageScore},
		{"Time spent", FormatMinutes(p.TimeSpent)},
		{"Current streak (days)", p.CurrentStreak},
		{"Longest streak (days)", p.LongestStreak},
		{"Skill level", p.SkillLevel.DisplayName()},
		{"Sections completed", len(p.CompletedSections)},
		{"Last active", formatTime(p.LastActiveDate)},
	}
	return rows
}

func resultRows(in Input) [][]interface{} {
	rows := [][]interface{}{
		{"Simulation", "Title", "Score", "Questions", "Percent", "Minutes", "Attempts", "Completed"},
	}
	for _, r := range in.Progress.SimulationResults {
		rows = append(rows, []interface{}{
			r.SimulationID, title(in.Catalog, r.SimulationID),
			r.Score, r.TotalQuestions, r.Percent(), r.TimeSpent, r.Attempts,
			formatTime(r.CompletedAt),
		})
	}
	return rows
}

func achievementRows(p *progress.UserProgress) [][]interface{} {
	rows := [][]interface{}{{"Achievement", "Title", "Category", "Unlocked"}}
	for _, a := range p.Achievements {
		rows = append(rows, []interface{}{a.ID, a.Title, a.Category.DisplayName(), formatTime(a.UnlockedAt)})
	}
	return rows
}

func historyRows(in Input) [][]interface{} {
	rows := [][]interface{}{{"Run", "Simulation", "Score", "Questions", "Minutes", "Attempt", "Completed"}}
	for _, a := range in.History {
		rows = append(rows, []interface{}{
			a.RunID, title(in.Catalog, a.SimulationID),
			a.Score, a.TotalQuestions, a.TimeSpent, a.Attempts,
			formatTime(a.CompletedAt),
		})
	}
	return rows
}

func title(c *simulation.Catalog, id string) string {
	if c != nil {
		if def, ok := c.Get(id); ok {
			return def.Title
		}
	}
	return id
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// FormatMinutes renders minutes as "45m" or "1h 5m".
func FormatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}
