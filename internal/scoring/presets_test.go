package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPresetUnknownID(t *testing.T) {
	_, err := Preset("nope")
	assert.Error(t, err)
}

// Pin the extended preset so a threshold change cannot slip through
// unnoticed: any edit to the preset must update this test too.
func TestExtendedV6Pinned(t *testing.T) {
	cfg, err := Preset(PresetExtendedV6)
	require.NoError(t, err)

	assert.Equal(t, "extended-v6", cfg.Meta.PresetID)
	assert.Equal(t, 14, cfg.Indicators.RSIPeriod)
	assert.Equal(t, 20, cfg.Indicators.BollingerWindow)
	assert.InDelta(t, 2.0, cfg.Indicators.BollingerMult, 1e-9)
	assert.Equal(t, 50, cfg.Indicators.SMAMedium)
	assert.Equal(t, 200, cfg.Indicators.SMALong)
	assert.Equal(t, 12, cfg.Indicators.MACDFast)
	assert.Equal(t, 26, cfg.Indicators.MACDSlow)
	assert.Equal(t, 9, cfg.Indicators.MACDSignal)

	assert.InDelta(t, 35, cfg.Technical.RSIOversold, 1e-9)
	assert.InDelta(t, 70, cfg.Technical.RSIOverbought, 1e-9)
	assert.True(t, cfg.Technical.UseBollinger)
	assert.True(t, cfg.Technical.UseSMAMedium)
	assert.True(t, cfg.Technical.UseGoldenCross)
	assert.True(t, cfg.Technical.UseMACD)
	assert.InDelta(t, 5.5, cfg.Technical.MaxPoints, 1e-9)

	assert.InDelta(t, 15, cfg.Fundamental.PECheap, 1e-9)
	assert.InDelta(t, 32.5, cfg.Fundamental.PEExpensive, 1e-9)
	assert.InDelta(t, 0.03, cfg.Fundamental.YieldAttractive, 1e-9)
	assert.InDelta(t, 2, cfg.Fundamental.MaxPoints, 1e-9)

	assert.InDelta(t, 0.40, cfg.Weights.Technical, 1e-9)
	assert.InDelta(t, 0.20, cfg.Weights.Fundamental, 1e-9)
	assert.InDelta(t, 0.20, cfg.Weights.Consensus, 1e-9)
	assert.InDelta(t, 0.20, cfg.Weights.Sentiment, 1e-9)
	assert.InDelta(t, 1.0, cfg.Weights.Sum(), 1e-9)

	assert.InDelta(t, 3.8, cfg.Bands.StrongBuy, 1e-9)
	assert.InDelta(t, 3.0, cfg.Bands.Buy, 1e-9)
	assert.InDelta(t, 2.2, cfg.Bands.Hold, 1e-9)
	assert.InDelta(t, 1.5, cfg.Bands.Sell, 1e-9)

	assert.Equal(t, 48, cfg.News.FreshnessHours)
	assert.Equal(t, 6, cfg.News.MaxItems)
	assert.NotEmpty(t, cfg.News.PositiveKeywords)
	assert.NotEmpty(t, cfg.News.NegativeKeywords)
}

func TestClassicV1Pinned(t *testing.T) {
	cfg, err := Preset(PresetClassicV1)
	require.NoError(t, err)

	assert.Equal(t, "classic-v1", cfg.Meta.PresetID)
	assert.InDelta(t, 30, cfg.Technical.RSIOversold, 1e-9)
	assert.False(t, cfg.Technical.UseBollinger)
	assert.False(t, cfg.Technical.UseSMAMedium)
	assert.False(t, cfg.Technical.UseGoldenCross)
	assert.True(t, cfg.Technical.UseMACD)
	assert.InDelta(t, 3.0, cfg.Technical.MaxPoints, 1e-9)
	assert.Equal(t, 24, cfg.News.FreshnessHours)
	assert.Equal(t, 5, cfg.News.MaxItems)
}

func TestPresetReturnsIndependentCopies(t *testing.T) {
	first, err := Preset(PresetExtendedV6)
	require.NoError(t, err)
	first.Technical.RSIOversold = 5

	second, err := Preset(PresetExtendedV6)
	require.NoError(t, err)
	assert.InDelta(t, 35, second.Technical.RSIOversold, 1e-9)
}

func TestLoadFileRoundTrip(t *testing.T) {
	cfg, err := Preset(PresetExtendedV6)
	require.NoError(t, err)

	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, raw, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, raw)
	assert.Equal(t, cfg, *loaded)
}

func TestLoadFileRejectsUnknownFields(t *testing.T) {
	cfg, err := Preset(PresetExtendedV6)
	require.NoError(t, err)

	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)
	data = append(data, []byte("bogus_knob: 7\n")...)

	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, _, err = LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsInvalidValues(t *testing.T) {
	cfg, err := Preset(PresetExtendedV6)
	require.NoError(t, err)
	cfg.Weights.Technical = 0.9

	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, _, err = LoadFile(path)
	require.Error(t, err)

	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestHashIsDeterministic(t *testing.T) {
	cfg, err := Preset(PresetExtendedV6)
	require.NoError(t, err)

	first, err := Hash(&cfg)
	require.NoError(t, err)
	second, err := Hash(&cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)

	other, err := Preset(PresetClassicV1)
	require.NoError(t, err)
	otherHash, err := Hash(&other)
	require.NoError(t, err)
	assert.NotEqual(t, first, otherHash)
}
