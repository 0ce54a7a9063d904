package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level string

const (
	levelDebug level = "debug"
	levelInfo  level = "info"
	levelWarn  level = "warn"
)

func newLevels() *Normalizer[level] {
	return NewNormalizer(map[string]level{
		"debug":   levelDebug,
		"info":    levelInfo,
		"warn":    levelWarn,
		"warning": levelWarn,
	}, levelInfo)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newLevels()

	tests := []struct {
		name  string
		input string
		want  level
	}{
		{"exact match", "debug", levelDebug},
		{"case insensitive", "DEBUG", levelDebug},
		{"surrounding spaces", "  warn ", levelWarn},
		{"alias", "Warning", levelWarn},
		{"unknown falls back", "verbose", levelInfo},
		{"empty falls back", "", levelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := newLevels()

	got, err := n.NormalizeWithError(" Info ")
	require.NoError(t, err)
	assert.Equal(t, levelInfo, got)

	got, err = n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, levelInfo, got)

	_, err = n.NormalizeWithError("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debug")
	assert.Contains(t, err.Error(), `"loud"`)
}

func TestNormalizer_ValidKeysSortedCopy(t *testing.T) {
	n := newLevels()
	keys := n.ValidKeys()
	assert.Equal(t, []string{"debug", "info", "warn", "warning"}, keys)

	keys[0] = "mutated"
	assert.Equal(t, "debug", n.ValidKeys()[0])
}
