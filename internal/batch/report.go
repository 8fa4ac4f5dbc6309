// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/charge-batch/pkg/types"
)

// Report is the YAML document written when a run report is requested.
type Report struct {
	GeneratedAt time.Time          `yaml:"generated_at"`
	Status      types.RunStatus    `yaml:"status"`
	Run         *types.BatchResult `yaml:"run"`
}

// WriteReport writes a YAML run report for result to path.
func WriteReport(path string, result *types.BatchResult) error {
	report := Report{
		GeneratedAt: time.Now().UTC(),
		Status:      result.Status(),
		Run:         result,
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
