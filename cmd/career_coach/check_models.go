package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-coach/internal/ats"
	"github.com/jonathan/career-coach/internal/skills"
	"github.com/spf13/cobra"
)

// modelStatus reports how one optional model file resolved.
type modelStatus struct {
	Status string `json:"status"`
	Source string `json:"source,omitempty"`
	Tags   int    `json:"tags,omitempty"`
}

type modelsReport struct {
	ResumeModel modelStatus `json:"resume_model"`
	TagWeights  modelStatus `json:"tag_weights"`
}

func status(loaded bool) string {
	if loaded {
		return "loaded"
	}
	return "default"
}

func newCheckModelsCmd(root *rootOptions) *cobra.Command {
	var modelFile, weightsFile string
	cmd := &cobra.Command{
		Use:   "check-models",
		Short: "Report whether the configured model files load",
		Long: "Loads the resume scoring model and tag weights the server would use and reports " +
			"whether each resolved to the built-in default or the loaded file. Rejected files are logged.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := root.load("stderr")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if modelFile == "" {
				modelFile = cfg.Scoring.ModelFile
			}
			if weightsFile == "" {
				weightsFile = cfg.Scoring.TagWeightsFile
			}

			model := ats.LoadLinearModel(modelFile, log)
			weights := skills.LoadTagWeights(weightsFile, log)

			report := modelsReport{
				ResumeModel: modelStatus{Status: status(model.Loaded()), Source: model.Source()},
				TagWeights:  modelStatus{Status: status(weights.Loaded()), Source: weights.Source(), Tags: weights.Len()},
			}
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal output: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&modelFile, "model", "", "Path to linear model JSON (overrides scoring.model-file)")
	cmd.Flags().StringVar(&weightsFile, "tag-weights", "", "Path to tag weights JSON (overrides scoring.tag-weights-file)")
	return cmd
}
