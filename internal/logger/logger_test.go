package logger

import (
	"bytes"
	"testing"

	"github.com/humanbelnik/popchoice/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(config.Log{Level: "warn"}, &buf)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Str("flow_id", "abc").Msg("shown")
	assert.Contains(t, buf.String(), `"flow_id":"abc"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(config.Log{Level: "nonsense"}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
