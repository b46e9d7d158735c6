package output

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/retirewise/retirement-planner/internal/domain"
)

// writeJSON renders the full result (params echoed back plus timeline) as
// indented JSON.
func writeJSON(w io.Writer, result *domain.SimulationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}
