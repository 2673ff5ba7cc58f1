package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ember-oracle/ember/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, int64(180), cfg.Epoch.SubmitPeriodSec)
	require.Equal(t, int64(90), cfg.Epoch.RevealPeriodSec)
	require.Equal(t, uint32(1), cfg.Threshold.MinVoteCount)
	require.False(t, cfg.Metrics.Enabled)
	require.Equal(t, "info", cfg.Log.Level)

	timing, err := cfg.EpochTiming()
	require.NoError(t, err)
	require.Equal(t, int64(180), timing.SubmitPeriod)
	require.NoError(t, cfg.Params().Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
epoch:
  first_epoch_start_time: 1700000000
  submit_period_sec: 300
  reveal_period_sec: 120
  vote_power_height: 42
threshold:
  min_vote_count: 5
  low_asset_usd_threshold: 100000000
  high_asset_usd_threshold: 900000000
  high_asset_turnout_threshold_bips: 2500
metrics:
  enabled: true
  listen_addr: ":9191"
log:
  level: debug
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, int64(1700000000), cfg.Epoch.FirstEpochStartTime)
	require.Equal(t, int64(300), cfg.Epoch.SubmitPeriodSec)
	require.Equal(t, int64(42), cfg.Epoch.VotePowerHeight)
	require.Equal(t, uint32(5), cfg.Threshold.MinVoteCount)
	require.Equal(t, uint32(2500), cfg.Threshold.HighAssetTurnoutThresholdBips)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, ":9191", cfg.Metrics.ListenAddr)
	require.Equal(t, "debug", cfg.Log.Level)

	params := cfg.Params()
	require.Equal(t, int64(100000000), params.LowAssetUSDThreshold.Int64())
	require.Equal(t, int64(900000000), params.HighAssetUSDThreshold.Int64())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("EMBER_EPOCH_SUBMIT_PERIOD_SEC", "45")
	t.Setenv("EMBER_THRESHOLD_MIN_VOTE_COUNT", "9")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, int64(45), cfg.Epoch.SubmitPeriodSec)
	require.Equal(t, uint32(9), cfg.Threshold.MinVoteCount)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "zero submit period",
			content: `
epoch:
  submit_period_sec: 0
`,
		},
		{
			name: "inverted thresholds",
			content: `
threshold:
  low_asset_usd_threshold: 900000000
  high_asset_usd_threshold: 100000000
`,
		},
		{
			name: "zero min vote count",
			content: `
threshold:
  min_vote_count: 0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
