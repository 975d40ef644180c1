package data

import (
	"encoding/json"
	"fmt"
	"io"

	"plant-report/internal/config"
	"plant-report/internal/exporter/common"
	"plant-report/internal/model"

	"gopkg.in/yaml.v3"
)

// JSONExporter writes the report as an indented JSON document
type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Export(rep *model.Report, cfg *config.Config) (string, error) {
	outputFile := cfg.OutputPath(".json")
	doc := NewDocument(rep)

	err := common.WriteFileAtomic(outputFile, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	})
	if err != nil {
		return "", fmt.Errorf("failed to write JSON report: %w", err)
	}
	return outputFile, nil
}

// YAMLExporter writes the report as a YAML document
type YAMLExporter struct{}

func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

func (e *YAMLExporter) Export(rep *model.Report, cfg *config.Config) (string, error) {
	outputFile := cfg.OutputPath(".yaml")
	doc := NewDocument(rep)

	err := common.WriteFileAtomic(outputFile, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	})
	if err != nil {
		return "", fmt.Errorf("failed to write YAML report: %w", err)
	}
	return outputFile, nil
}
