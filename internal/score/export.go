package score

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/dataset"
	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

// exportHeader is the fixed export column set, one row per rookie, no index
// column.
var exportHeader = []string{
	"Player", "Team", "Pick", "Salary",
	"Games", "Minutes", "PIE", "Production",
	"Expected", "Residual",
}

// ExportPath returns the residuals CSV path for a season.
func ExportPath(outputDir string, s season.Season) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s_rookies_residuals.csv", s))
}

// Export writes the scored cohort, preserving its ordering.
func Export(c Cohort, outputDir string, s season.Season) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := ExportPath(outputDir, s)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create residuals export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, r := range c {
		row := []string{
			r.PlayerName,
			r.TeamAbbrev,
			strconv.Itoa(r.Pick),
			formatFloat(r.Salary),
			strconv.Itoa(r.Games),
			formatFloat(r.Minutes),
			formatFloat(r.ImpactRate),
			formatFloat(r.Production),
			formatFloat(r.Expected),
			formatFloat(r.Residual),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row for %s: %w", r.PlayerName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush residuals export: %w", err)
	}
	return path, nil
}

// ReadExport loads a residuals CSV back into a cohort. The serve command
// reads exports this way, and it doubles as the round-trip check on the
// format.
func ReadExport(path string, s season.Season) (Cohort, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open residuals export: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read residuals export %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("residuals export %s: missing header", path)
	}
	if len(records[0]) != len(exportHeader) {
		return nil, fmt.Errorf("residuals export %s: want %d columns, have %d", path, len(exportHeader), len(records[0]))
	}
	for i, name := range exportHeader {
		if records[0][i] != name {
			return nil, fmt.Errorf("residuals export %s: column %d is %q, want %q", path, i, records[0][i], name)
		}
	}

	cohort := make(Cohort, 0, len(records)-1)
	for n, rec := range records[1:] {
		parsed, err := parseExportRow(rec, s)
		if err != nil {
			return nil, fmt.Errorf("residuals export %s row %d: %w", path, n+2, err)
		}
		cohort = append(cohort, parsed)
	}
	return cohort, nil
}

func parseExportRow(rec []string, s season.Season) (ResidualRecord, error) {
	pick, err := strconv.Atoi(rec[2])
	if err != nil {
		return ResidualRecord{}, fmt.Errorf("bad pick %q", rec[2])
	}
	games, err := strconv.Atoi(rec[4])
	if err != nil {
		return ResidualRecord{}, fmt.Errorf("bad games %q", rec[4])
	}

	floats := make([]float64, 0, 6)
	for _, i := range []int{3, 5, 6, 7, 8, 9} {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return ResidualRecord{}, fmt.Errorf("bad value %q in column %s", rec[i], exportHeader[i])
		}
		floats = append(floats, v)
	}

	return ResidualRecord{
		RookieRecord: dataset.RookieRecord{
			PlayerName: rec[0],
			TeamAbbrev: rec[1],
			Season:     s,
			Pick:       pick,
			Games:      games,
			Salary:     floats[0],
			Minutes:    floats[1],
			ImpactRate: floats[2],
			Production: floats[3],
		},
		Expected: floats[4],
		Residual: floats[5],
	}, nil
}

// formatFloat keeps full float precision so exports round-trip exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
