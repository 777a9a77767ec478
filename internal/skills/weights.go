package skills

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jonathan/career-coach/internal/parsing"
	"github.com/jonathan/career-coach/internal/schemas"
	rootschemas "github.com/jonathan/career-coach/schemas"
	"go.uber.org/zap"
)

// defaultWeight applies to any tag not present in a loaded table.
const defaultWeight = 1.0

// TagWeights is either the default (every tag weighs 1.0) or a loaded, validated table.
// The zero value is the default. It is immutable once built.
type TagWeights struct {
	weights map[string]float64
	source  string
}

type tagWeightsFile struct {
	TagWeights map[string]float64 `json:"tagWeights"`
}

// DefaultTagWeights returns the all-ones table.
func DefaultTagWeights() TagWeights {
	return TagWeights{}
}

// LoadedTagWeights builds a table from validated weights. Keys are normalized;
// non-positive weights are skipped.
func LoadedTagWeights(weights map[string]float64, source string) TagWeights {
	normalized := make(map[string]float64, len(weights))
	for tag, w := range weights {
		key := parsing.NormalizeTag(tag)
		if key == "" || w <= 0 {
			continue
		}
		normalized[key] = w
	}
	return TagWeights{weights: normalized, source: source}
}

// Loaded reports whether a weight table is in use.
func (tw TagWeights) Loaded() bool {
	return tw.weights != nil
}

// Source returns where the table was loaded from.
func (tw TagWeights) Source() string {
	return tw.source
}

// Len returns the number of explicit weights.
func (tw TagWeights) Len() int {
	return len(tw.weights)
}

// Weight returns the multiplier for tag, defaulting to 1.0.
func (tw TagWeights) Weight(tag string) float64 {
	if w, ok := tw.weights[tag]; ok {
		return w
	}
	return defaultWeight
}

// Apply returns a new vector whose weights are replaced by the table's weights.
func (tw TagWeights) Apply(v SkillVector) SkillVector {
	out := make(SkillVector, len(v))
	for t := range v {
		out[t] = tw.Weight(t)
	}
	return out
}

// ParseTagWeights validates raw tag weight JSON against the schema and decodes it.
func ParseTagWeights(data []byte) (map[string]float64, error) {
	if err := schemas.ValidateDocument(rootschemas.TagWeights, data); err != nil {
		return nil, fmt.Errorf("invalid tag weights: %w", err)
	}

	var f tagWeightsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode tag weights: %w", err)
	}
	return f.TagWeights, nil
}

// ReadTagWeights reads and parses a tag weights file.
func ReadTagWeights(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag weights file %s: %w", path, err)
	}
	return ParseTagWeights(data)
}

// LoadTagWeights loads the table at path. Failures are logged and the default table
// is returned; an empty path selects the default silently.
func LoadTagWeights(path string, log *zap.Logger) TagWeights {
	if path == "" {
		return DefaultTagWeights()
	}

	weights, err := ReadTagWeights(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("tag weights file not found, using plain cosine matching", zap.String("path", path))
		} else {
			log.Warn("discarding tag weights, using plain cosine matching", zap.String("path", path), zap.Error(err))
		}
		return DefaultTagWeights()
	}

	tw := LoadedTagWeights(weights, path)
	log.Info("loaded tag weights", zap.String("path", path), zap.Int("tags", tw.Len()))
	return tw
}
