package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-wizard/internal/mapper"
	"github.com/jonathan/resume-wizard/internal/types"
)

// Input document formats
const (
	formatWorking    = "working"
	formatPersisted  = "persisted"
	formatExtraction = "extraction"
	formatPayload    = "payload"
)

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// loadWorkingDocument decodes data in the given format into a working
// document. Extraction warnings are returned alongside.
func loadWorkingDocument(data []byte, format string) (types.WorkingDocument, []error, error) {
	switch format {
	case formatWorking, "":
		doc, err := mapper.DecodeWorkingDocument(data)
		if err != nil {
			return types.WorkingDocument{}, nil, err
		}
		return *doc, nil, nil
	case formatPersisted:
		r, err := mapper.DecodePersistedResume(data)
		if err != nil {
			return types.WorkingDocument{}, nil, err
		}
		return mapper.ToWorkingDocument(r), nil, nil
	case formatExtraction:
		var p types.ExtractedProfile
		if err := json.Unmarshal(data, &p); err != nil {
			return types.WorkingDocument{}, nil, &mapper.DecodeError{Message: "invalid extraction JSON", Cause: err}
		}
		doc, warnings := mapper.FromExtraction(p)
		return doc, warnings, nil
	default:
		return types.WorkingDocument{}, nil, fmt.Errorf("unknown input format %q (want working, persisted or extraction)", format)
	}
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if path == "" {
		_, err := w.Write(jsonBytes)
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
