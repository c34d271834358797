package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"zipweather/models"
)

// ErrNoRecord is returned when there is nothing to persist. No file is touched.
var ErrNoRecord = errors.New("no weather record to persist")

// CSVWriter writes a single weather record as a one-row CSV file
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a writer targeting path
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the destination file
func (w *CSVWriter) Path() string {
	return w.path
}

// Write creates or truncates the file and writes the header plus one data row.
// The parent directory must already exist.
func (w *CSVWriter) Write(record *models.WeatherRecord) error {
	return WriteCSV(record, w.path)
}

// WriteCSV writes record to path, see CSVWriter.Write
func WriteCSV(record *models.WeatherRecord, path string) (err error) {
	if record == nil {
		return ErrNoRecord
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	cw := csv.NewWriter(file)
	if err := cw.Write(models.RecordColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.Write(recordRow(record)); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// ReadCSV loads a file produced by WriteCSV back into a record
func ReadCSV(path string) (*models.WeatherRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) != 2 {
		return nil, fmt.Errorf("%s: expected header and one row, got %d rows", path, len(rows))
	}

	values := make(map[string]string, len(rows[0]))
	for i, col := range rows[0] {
		if i < len(rows[1]) {
			values[col] = rows[1][i]
		}
	}
	for _, col := range models.RecordColumns {
		if _, ok := values[col]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	record := &models.WeatherRecord{
		City:    values["city"],
		Weather: values["weather"],
	}
	numbers := []struct {
		col string
		dst *float64
	}{
		{"temperature", &record.Temperature},
		{"humidity", &record.Humidity},
		{"wind_speed", &record.WindSpeed},
		{"wind_deg", &record.WindDeg},
	}
	for _, n := range numbers {
		v, err := strconv.ParseFloat(values[n.col], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: column %q: %w", path, n.col, err)
		}
		*n.dst = v
	}
	return record, nil
}

func recordRow(r *models.WeatherRecord) []string {
	return []string{
		r.City,
		formatNumber(r.Temperature),
		formatNumber(r.Humidity),
		r.Weather,
		formatNumber(r.WindSpeed),
		formatNumber(r.WindDeg),
	}
}

// formatNumber renders the shortest decimal that round-trips, so 80 stays "80"
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
