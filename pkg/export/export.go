// Package export writes solved policy and value grids in file formats for
// downstream analysis.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/carrental/core/solver"
)

// Format names accepted by WriteFile.
const (
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatYAML    = "yaml"
	FormatHeatmap = "html"
)

// Snapshot holds the grids of a solved run indexed by [first][second].
type Snapshot struct {
	Iterations int         `json:"iterations" yaml:"iterations"`
	Sweeps     int         `json:"sweeps" yaml:"sweeps"`
	Policy     [][]int     `json:"policy" yaml:"policy"`
	Values     [][]float64 `json:"values" yaml:"values"`
}

// NewSnapshot copies the grids of res.
func NewSnapshot(res *solver.Result) Snapshot {
	return Snapshot{
		Iterations: res.Iterations,
		Sweeps:     res.Sweeps,
		Policy:     res.Policy.Rows(),
		Values:     res.Values.Rows(),
	}
}

// WriteJSON writes the snapshot to w in JSON format.
func WriteJSON(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	return enc.Encode(s)
}

// WriteYAML writes the snapshot to w in YAML format.
func WriteYAML(w io.Writer, s Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// WriteCSV writes one row per state with its action and value.
func WriteCSV(w io.Writer, s Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"first", "second", "action", "value"}); err != nil {
		return err
	}
	for i, row := range s.Policy {
		for j, a := range row {
			value := ""
			if i < len(s.Values) && j < len(s.Values[i]) {
				value = strconv.FormatFloat(s.Values[i][j], 'f', -1, 64)
			}
			rec := []string{strconv.Itoa(i), strconv.Itoa(j), strconv.Itoa(a), value}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the snapshot to dir/<name>.<format>.
func WriteFile(dir, name, format string, s Snapshot) (string, error) {
	var write func(io.Writer, Snapshot) error
	switch format {
	case FormatJSON:
		write = WriteJSON
	case FormatCSV:
		write = WriteCSV
	case FormatYAML:
		write = WriteYAML
	case FormatHeatmap:
		write = WriteHeatmap
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+"."+format)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := write(f, s); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
