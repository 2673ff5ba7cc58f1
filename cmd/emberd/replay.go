package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ember-oracle/ember/config"
	"github.com/ember-oracle/ember/x/oracle/keeper"
	"github.com/ember-oracle/ember/x/oracle/types"
)

// Scenario describes one replayable price epoch: the vote power table and
// the submissions to run through it.
type Scenario struct {
	AssetVotePowerUSD int64        `mapstructure:"asset_vote_power_usd"`
	Submissions       []Submission `mapstructure:"submissions"`
}

// Submission is one voter's committed observation with its vote power.
type Submission struct {
	Account string `mapstructure:"account"`
	Native  int64  `mapstructure:"native"`
	Asset   int64  `mapstructure:"asset"`
	Price   uint64 `mapstructure:"price"`
	Random  uint64 `mapstructure:"random"`
}

func replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Replay a scenario file through one full price epoch",
		Long: `Replay loads a vote power table and a set of price submissions from a
scenario file, runs the submit, reveal and finalize phases on a simulated
clock, and prints the epoch result as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			scenario, err := loadScenario(args[0])
			if err != nil {
				return err
			}

			if cfg.Metrics.Enabled {
				mux := http.NewServeMux()
				mux.Handle(cfg.Metrics.Path, promhttp.Handler())
				go func() {
					if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
						logger.Error("metrics server stopped", "error", err)
					}
				}()
			}

			result, err := runScenario(cfg, logger, scenario)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

func loadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if len(s.Submissions) == 0 {
		return nil, fmt.Errorf("scenario has no submissions")
	}
	return &s, nil
}

// runScenario drives one epoch end to end on a simulated clock. Every
// submission commits at the submit window start, reveals when the reveal
// window opens, and the epoch finalizes the instant the reveal window ends.
func runScenario(cfg *config.Config, logger log.Logger, scenario *Scenario) (types.EpochResult, error) {
	entries := make([]types.AccountPower, 0, len(scenario.Submissions))
	for _, s := range scenario.Submissions {
		entries = append(entries, types.AccountPower{
			Account: s.Account,
			Native:  math.NewInt(s.Native),
			Asset:   math.NewInt(s.Asset),
		})
	}
	source := types.NewSnapshotVotePowerSource(entries, math.NewInt(scenario.AssetVotePowerUSD))

	timing, err := cfg.EpochTiming()
	if err != nil {
		return types.EpochResult{}, err
	}
	k, err := keeper.NewKeeper(timing, cfg.Params(), source, logger)
	if err != nil {
		return types.EpochResult{}, err
	}
	k.SetVotePowerHeight(cfg.Epoch.VotePowerHeight)

	// Replay into the epoch after the first full boundary so the submit
	// window is entirely in simulated future time.
	epochID := timing.EpochID(timing.FirstEpochStartTime) + 1
	submitAt := timing.SubmitWindowStart(epochID)
	revealAt := timing.SubmitWindowEnd(epochID)
	finalizeAt := timing.RevealWindowEnd(epochID)

	for _, s := range scenario.Submissions {
		hash := types.ComputeCommitHash(s.Price, s.Random, s.Account)
		if err := k.SubmitPriceHash(epochID, s.Account, hash, submitAt); err != nil {
			return types.EpochResult{}, fmt.Errorf("submit for %s: %w", s.Account, err)
		}
	}
	for _, s := range scenario.Submissions {
		if err := k.RevealPrice(epochID, s.Account, s.Price, s.Random, revealAt); err != nil {
			return types.EpochResult{}, fmt.Errorf("reveal for %s: %w", s.Account, err)
		}
	}
	return k.FinalizePriceEpoch(epochID, finalizeAt)
}
