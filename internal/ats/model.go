package ats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jonathan/career-coach/internal/schemas"
	rootschemas "github.com/jonathan/career-coach/schemas"
	"go.uber.org/zap"
)

// LinearModel is an externally trained linear scoring model.
type LinearModel struct {
	Intercept float64 `json:"intercept"`
	Coverage  float64 `json:"coverage"`
	Sections  float64 `json:"sections"`
	Bullets   float64 `json:"bullets"`
	Metrics   float64 `json:"metrics"`
}

type modelFile struct {
	Weights LinearModel `json:"weights"`
}

// ModelConfig is either the default heuristic or a loaded, validated LinearModel.
// The zero value is the default.
type ModelConfig struct {
	model  *LinearModel
	source string
}

// DefaultModel selects the built-in heuristic formula.
func DefaultModel() ModelConfig {
	return ModelConfig{}
}

// LoadedModel wraps a validated model. source is informational (usually the file path).
func LoadedModel(m LinearModel, source string) ModelConfig {
	return ModelConfig{model: &m, source: source}
}

// Loaded reports whether a linear model is in use.
func (c ModelConfig) Loaded() bool {
	return c.model != nil
}

// Source returns where the model came from, or "" for the default.
func (c ModelConfig) Source() string {
	return c.source
}

// Formula returns the scoring formula this config selects.
func (c ModelConfig) Formula() Formula {
	if c.model == nil {
		return Heuristic{}
	}
	return *c.model
}

// ParseLinearModel validates raw model JSON against the schema and decodes it.
func ParseLinearModel(data []byte) (LinearModel, error) {
	if err := schemas.ValidateDocument(rootschemas.LinearModel, data); err != nil {
		return LinearModel{}, fmt.Errorf("invalid linear model: %w", err)
	}

	var f modelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return LinearModel{}, fmt.Errorf("failed to decode linear model: %w", err)
	}
	return f.Weights, nil
}

// ReadLinearModel reads and parses a model file.
func ReadLinearModel(path string) (LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LinearModel{}, fmt.Errorf("failed to read model file %s: %w", path, err)
	}
	return ParseLinearModel(data)
}

// LoadLinearModel loads the model at path. Any failure is logged and the default
// heuristic is returned; an empty path selects the default silently.
func LoadLinearModel(path string, log *zap.Logger) ModelConfig {
	if path == "" {
		return DefaultModel()
	}

	m, err := ReadLinearModel(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("resume model file not found, using heuristic scoring", zap.String("path", path))
		} else {
			log.Warn("discarding resume model, using heuristic scoring", zap.String("path", path), zap.Error(err))
		}
		return DefaultModel()
	}

	log.Info("loaded resume scoring model", zap.String("path", path))
	return LoadedModel(m, path)
}
