// Package output serializes harvest results as UTF-8 JSON with stable key
// ordering.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/logger"
)

// stdoutPath values route output to standard output.
const stdoutPath = "-"

// jsonIndent matches the registry's published metadata formatting.
const jsonIndent = "    "

// Writer writes result sets to a file or standard output. Write failures
// are returned to the caller: partial output is worse than no output.
type Writer struct {
	log logger.Interface
}

// NewWriter creates a result writer.
func NewWriter(log logger.Interface) *Writer {
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Writer{log: log}
}

// Write serializes results to path. An empty path or "-" writes indented
// JSON to standard output.
func (w *Writer) Write(results *domain.ResultSet, path string) error {
	if path == "" || path == stdoutPath {
		return w.encode(results, os.Stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if encodeErr := w.encode(results, file); encodeErr != nil {
		file.Close()
		return encodeErr
	}

	if closeErr := file.Close(); closeErr != nil {
		return fmt.Errorf("close output file: %w", closeErr)
	}

	w.log.Info("Results written", "path", path, "records", results.Len())

	return nil
}

// encode writes the indented JSON document.
func (w *Writer) encode(results *domain.ResultSet, dst *os.File) error {
	enc := json.NewEncoder(dst)
	enc.SetIndent("", jsonIndent)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	return nil
}
