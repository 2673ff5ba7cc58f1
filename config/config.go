package config

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/viper"

	"github.com/ember-oracle/ember/x/oracle/types"
)

// Config represents the complete configuration for the oracle engine
type Config struct {
	Epoch     EpochConfig     `mapstructure:"epoch"`
	Threshold ThresholdConfig `mapstructure:"threshold"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

// EpochConfig holds the epoch timing configuration
type EpochConfig struct {
	FirstEpochStartTime int64 `mapstructure:"first_epoch_start_time"`
	SubmitPeriodSec     int64 `mapstructure:"submit_period_sec"`
	RevealPeriodSec     int64 `mapstructure:"reveal_period_sec"`
	VotePowerHeight     int64 `mapstructure:"vote_power_height"`
}

// ThresholdConfig holds the finalization threshold configuration
type ThresholdConfig struct {
	MinVoteCount                  uint32 `mapstructure:"min_vote_count"`
	LowAssetUSDThreshold          int64  `mapstructure:"low_asset_usd_threshold"`
	HighAssetUSDThreshold         int64  `mapstructure:"high_asset_usd_threshold"`
	HighAssetTurnoutThresholdBips uint32 `mapstructure:"high_asset_turnout_threshold_bips"`
}

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`
	Path       string `mapstructure:"path"`
}

// LogConfig holds the logger configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig loads configuration from a YAML file with EMBER_* environment
// variable overrides (EMBER_EPOCH_SUBMIT_PERIOD_SEC and so on). An empty
// path loads defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("EMBER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := types.DefaultParams()
	v.SetDefault("epoch.first_epoch_start_time", 0)
	v.SetDefault("epoch.submit_period_sec", 180)
	v.SetDefault("epoch.reveal_period_sec", 90)
	v.SetDefault("epoch.vote_power_height", 0)
	v.SetDefault("threshold.min_vote_count", def.MinVoteCount)
	v.SetDefault("threshold.low_asset_usd_threshold", def.LowAssetUSDThreshold.Int64())
	v.SetDefault("threshold.high_asset_usd_threshold", def.HighAssetUSDThreshold.Int64())
	v.SetDefault("threshold.high_asset_turnout_threshold_bips", def.HighAssetTurnoutThresholdBips)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen_addr", ":26661")
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.EpochTiming(); err != nil {
		return err
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Metrics.Enabled && c.Metrics.ListenAddr == "" {
		return fmt.Errorf("metrics listen address is required when metrics are enabled")
	}
	return nil
}

// EpochTiming converts the epoch section to an engine timing value.
func (c *Config) EpochTiming() (types.EpochTiming, error) {
	return types.NewEpochTiming(
		c.Epoch.FirstEpochStartTime,
		c.Epoch.SubmitPeriodSec,
		c.Epoch.RevealPeriodSec,
	)
}

// Params converts the threshold section to engine params.
func (c *Config) Params() types.Params {
	return types.Params{
		MinVoteCount:                  c.Threshold.MinVoteCount,
		LowAssetUSDThreshold:          math.NewInt(c.Threshold.LowAssetUSDThreshold),
		HighAssetUSDThreshold:         math.NewInt(c.Threshold.HighAssetUSDThreshold),
		HighAssetTurnoutThresholdBips: c.Threshold.HighAssetTurnoutThresholdBips,
	}
}
