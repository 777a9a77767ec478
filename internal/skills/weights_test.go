package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTagWeights_Default(t *testing.T) {
	tw := DefaultTagWeights()

	assert.False(t, tw.Loaded())
	assert.Equal(t, 1.0, tw.Weight("react"))
	assert.Equal(t, SkillVector{"react": 1, "go": 1}, tw.Apply(SkillVector{"react": 1, "go": 1}))
}

func TestTagWeights_Loaded(t *testing.T) {
	tw := LoadedTagWeights(map[string]float64{"React": 1.5, "go": 2, "bad": 0}, "inline")

	assert.True(t, tw.Loaded())
	assert.Equal(t, 2, tw.Len())
	assert.Equal(t, 1.5, tw.Weight("react"))
	assert.Equal(t, 1.0, tw.Weight("bad"))
	assert.Equal(t, 1.0, tw.Weight("unknown"))

	weighted := tw.Apply(SkillVector{"react": 1, "rust": 1})
	assert.Equal(t, SkillVector{"react": 1.5, "rust": 1}, weighted)
}

func TestParseTagWeights(t *testing.T) {
	weights, err := ParseTagWeights([]byte(`{"tagWeights":{"react":1.2,"node":1.1}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"react": 1.2, "node": 1.1}, weights)

	tests := []struct {
		name string
		data string
	}{
		{name: "missing table", data: `{"weights":{}}`},
		{name: "string weight", data: `{"tagWeights":{"react":"high"}}`},
		{name: "negative weight", data: `{"tagWeights":{"react":-1}}`},
		{name: "malformed", data: `{"tagWeights":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTagWeights([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadTagWeights(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "weights.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"tagWeights":{"react":1.2}}`), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte(`{"tagWeights":{"react":"x"}}`), 0o600))

	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	tw := LoadTagWeights(good, log)
	assert.True(t, tw.Loaded())
	assert.Equal(t, good, tw.Source())

	assert.False(t, LoadTagWeights("", log).Loaded())
	assert.False(t, LoadTagWeights(filepath.Join(dir, "missing.json"), log).Loaded())
	assert.False(t, LoadTagWeights(bad, log).Loaded())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}
