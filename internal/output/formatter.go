package output

import (
	"fmt"
	"io"

	"github.com/retirewise/retirement-planner/internal/domain"
)

// GenerateReport writes the simulation result to w in the requested format.
// Supported formats: "console", "csv", "json".
func GenerateReport(w io.Writer, result *domain.SimulationResult, format string) error {
	switch format {
	case "console", "":
		return writeConsole(w, result)
	case "csv":
		return writeCSV(w, result)
	case "json":
		return writeJSON(w, result)
	default:
		return fmt.Errorf("unknown report format %q (expected console, csv or json)", format)
	}
}
