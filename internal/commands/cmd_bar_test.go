package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestNewBarInfo_DoubleOverrun(t *testing.T) {
	_, info := newBarInfo(100, 10*time.Minute, 20*time.Minute)

	assert.Equal(t, 30, info.Count, "short estimates use the minimum segment count")
	assert.Equal(t, 30, info.Active)
	assert.Equal(t, 15, info.Critical)
	assert.True(t, info.Overrun)
	assert.InDelta(t, 2.0, info.TimeRatio, 1e-9)
	require.NotNil(t, info.MarkerPercent)
	assert.InDelta(t, 50.0, *info.MarkerPercent, 1e-9)
	require.NotNil(t, info.MarkerIndex)
	assert.Equal(t, 15, *info.MarkerIndex)
	assert.Equal(t, "filled", info.Segments[14])
	assert.Equal(t, "critical", info.Segments[15])
}

func TestNewBarInfo_WithinEstimate(t *testing.T) {
	_, info := newBarInfo(40, time.Hour, 30*time.Minute)

	assert.Equal(t, 50, info.Count)
	assert.Equal(t, 20, info.Active)
	assert.Zero(t, info.Critical)
	assert.False(t, info.Overrun)
	assert.Nil(t, info.MarkerPercent)
	assert.Nil(t, info.MarkerIndex)
	assert.Equal(t, "00:30:00", info.Elapsed)
	assert.Equal(t, "01:00:00", info.Estimate)
}

func TestNewBarInfo_ClampsProgress(t *testing.T) {
	_, info := newBarInfo(150, time.Hour, 0)
	assert.Equal(t, 100, info.Progress)
	assert.Equal(t, info.Count, info.Active)
}

func TestBarCmd_JSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := &BarCmd{progress: 60, estimate: 10 * time.Minute, elapsed: 20 * time.Minute, width: 30, jsonOutput: true}

	require.NoError(t, cmd.run(context.Background(), &cli.Command{Writer: &buf}))

	var got barInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 60, got.Progress)
	assert.Equal(t, 18, got.Active)
	assert.Equal(t, 3, got.Critical)
	assert.Len(t, got.Segments, 30)
}

func TestBarCmd_Text(t *testing.T) {
	var buf bytes.Buffer
	cmd := &BarCmd{progress: 60, estimate: 10 * time.Minute, elapsed: 20 * time.Minute, width: 30}

	require.NoError(t, cmd.run(context.Background(), &cli.Command{Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "60%")
	assert.Contains(t, out, "30 (18 filled, 3 critical)")
	assert.Contains(t, out, "50.0% (segment 15)")
}

func TestBarCmd_RejectsNonPositiveEstimate(t *testing.T) {
	cmd := &BarCmd{estimate: 0, width: 10}
	assert.Error(t, cmd.run(context.Background(), &cli.Command{Writer: &bytes.Buffer{}}))
}
