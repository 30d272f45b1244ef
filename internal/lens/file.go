package lens

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a lens from a YAML, JSON or CSV file and names it name.
// Keys or columns missing from the file leave the series absent.
func LoadFile(path, name string) (Lens, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lens{}, fmt.Errorf("reading lens file: %w", err)
	}

	l, err := Decode(data, Format(path))
	if err != nil {
		return Lens{}, fmt.Errorf("decoding lens file %s: %w", path, err)
	}
	l.Name = name
	return l, nil
}

// Format returns the decoder name for a lens file path.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	default:
		return "yaml"
	}
}

// Decode parses lens data in the given format ("yaml", "json" or "csv").
func Decode(data []byte, format string) (Lens, error) {
	var l Lens
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &l); err != nil {
			return Lens{}, err
		}
	case "json":
		if err := json.Unmarshal(data, &l); err != nil {
			return Lens{}, err
		}
	case "csv":
		return decodeCSV(data)
	default:
		return Lens{}, fmt.Errorf("unsupported lens format %q", format)
	}
	return l, nil
}

// decodeCSV treats every known column as one series. Empty cells are
// skipped, so columns can be of different length.
func decodeCSV(data []byte) (Lens, error) {
	// Spreadsheet exports often start with a UTF-8 byte order mark
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return Lens{}, nil
		}
		return Lens{}, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var l Lens
	columns := make([]*[]float64, len(headers))
	for i, h := range headers {
		var target *[]float64
		switch strings.ToLower(strings.TrimSpace(h)) {
		case FieldTemp:
			target = &l.Temp
		case FieldPrecip:
			target = &l.Precip
		case FieldAgri:
			target = &l.Agri
		default:
			// Unknown columns are skipped
			continue
		}
		*target = []float64{}
		columns[i] = target
	}

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Lens{}, fmt.Errorf("row %d: %w", row, err)
		}

		for i, cell := range record {
			if i >= len(columns) || columns[i] == nil {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return Lens{}, fmt.Errorf("row %d column %q: %w", row, headers[i], err)
			}
			*columns[i] = append(*columns[i], v)
		}
	}

	return l, nil
}
