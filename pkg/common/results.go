package common

import (
	"encoding/json"
	"fmt"
)

type ResultsWriterInterface interface {
	CreateResultJson(results interface{}) (string, error)
}

var _ ResultsWriterInterface = &ResultsWriter{}

type ResultsWriter struct{}

func NewResultsWriter() *ResultsWriter {
	return &ResultsWriter{}
}

// CreateResultJson serializes command results into a single JSON line
// suitable for printing to stdout.
func (w *ResultsWriter) CreateResultJson(results interface{}) (string, error) {
	data, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to serialize results: %w", err)
	}
	return string(data) + "\n", nil
}
