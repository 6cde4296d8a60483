// Package config provides configuration management for the win-prediction analyzer.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from an optional YAML file and environment
// variables, starting from the pinned reference defaults. Environment
// variable placeholders in the file (${VAR_NAME}) are expanded.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("LWP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("app.name", d.App.Name)
	v.SetDefault("app.environment", d.App.Environment)
	v.SetDefault("app.log_level", d.App.LogLevel)

	v.SetDefault("analysis.map_size", d.Analysis.MapSize)
	v.SetDefault("analysis.map_center", d.Analysis.MapCenter)
	v.SetDefault("analysis.territory_margin", d.Analysis.TerritoryMargin)
	v.SetDefault("analysis.river_tolerance", d.Analysis.RiverTolerance)
	v.SetDefault("analysis.enemy_jungle_x", d.Analysis.EnemyJungleX)
	v.SetDefault("analysis.forward_norm_bound", d.Analysis.ForwardNormBound)
	v.SetDefault("analysis.frame_tolerance_ms", d.Analysis.FrameToleranceMs)
	v.SetDefault("analysis.lane_lead_minute", d.Analysis.LaneLeadMinute)
	v.SetDefault("analysis.lane_lead_tolerance_ms", d.Analysis.LaneLeadToleranceMs)
	v.SetDefault("analysis.lane_lead_match_limit", d.Analysis.LaneLeadMatchLimit)
	v.SetDefault("analysis.extract_parallelism", d.Analysis.ExtractParallelism)

	v.SetDefault("training.history_window", d.Training.HistoryWindow)
	v.SetDefault("training.min_matches", d.Training.MinMatches)
	v.SetDefault("training.trees", d.Training.Trees)
	v.SetDefault("training.max_depth", d.Training.MaxDepth)
	v.SetDefault("training.learning_rate", d.Training.LearningRate)
	v.SetDefault("training.min_leaf_weight", d.Training.MinLeafWeight)
	v.SetDefault("training.calibration_iterations", d.Training.CalibrationIterations)

	v.SetDefault("reference.ddragon_url", d.Reference.DDragonURL)
	v.SetDefault("reference.fallback_version", d.Reference.FallbackVersion)
	v.SetDefault("reference.requests_per_second", d.Reference.RequestsPerSecond)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.address", d.Metrics.Address)
}
