// Package config provides configuration management for the win-prediction analyzer.
package config

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" validate:"required"`
	Training  TrainingConfig  `mapstructure:"training" validate:"required"`
	Reference ReferenceConfig `mapstructure:"reference" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// AnalysisConfig holds the map-geometry and timeline constants. These are
// empirical reference values pinned for cross-implementation comparability;
// they are configurable for experiments but default to the contract values.
type AnalysisConfig struct {
	// MapSize is the coordinate extent of the square map.
	MapSize float64 `mapstructure:"map_size" validate:"required,gt=0"`
	// MapCenter is the x+y sum along the river anti-diagonal.
	MapCenter float64 `mapstructure:"map_center" validate:"required,gt=0"`
	// TerritoryMargin is how far past the center a position must be to
	// count as enemy territory.
	TerritoryMargin float64 `mapstructure:"territory_margin" validate:"gte=0"`
	// RiverTolerance is the perpendicular distance to the river diagonal
	// within which a frame counts as river control.
	RiverTolerance float64 `mapstructure:"river_tolerance" validate:"required,gt=0"`
	// EnemyJungleX is the blue-side X threshold for jungle invasion; the
	// red-side threshold is mirrored (MapSize - EnemyJungleX).
	EnemyJungleX float64 `mapstructure:"enemy_jungle_x" validate:"required,gt=0"`
	// ForwardNormBound fixes the forward-positioning normalization so
	// scores are comparable across matches.
	ForwardNormBound float64 `mapstructure:"forward_norm_bound" validate:"required,gt=0"`
	// FrameToleranceMs bounds nearest-timestamp frame alignment across
	// participants whose frame counts differ by sampling jitter.
	FrameToleranceMs int64 `mapstructure:"frame_tolerance_ms" validate:"required,gt=0"`
	// LaneLeadMinute is the fixed minute for lane lead sampling.
	LaneLeadMinute int `mapstructure:"lane_lead_minute" validate:"required,gt=0"`
	// LaneLeadToleranceMs excludes matches with no frame near the target.
	LaneLeadToleranceMs int64 `mapstructure:"lane_lead_tolerance_ms" validate:"required,gt=0"`
	// LaneLeadMatchLimit bounds the recent-match window for aggregation.
	LaneLeadMatchLimit int `mapstructure:"lane_lead_match_limit" validate:"required,gt=0"`
	// ExtractParallelism bounds concurrent per-match feature extraction.
	ExtractParallelism int `mapstructure:"extract_parallelism" validate:"required,gt=0"`
}

// TrainingConfig holds the training window and model hyperparameters.
type TrainingConfig struct {
	// HistoryWindow is the number of recent games the caller supplies.
	HistoryWindow int `mapstructure:"history_window" validate:"required,gt=0"`
	// MinMatches is the floor below which training is rejected.
	MinMatches int `mapstructure:"min_matches" validate:"required,gt=1"`
	// Trees, MaxDepth and LearningRate parameterize the boosted ensemble.
	Trees        int     `mapstructure:"trees" validate:"required,gt=0"`
	MaxDepth     int     `mapstructure:"max_depth" validate:"required,gt=0"`
	LearningRate float64 `mapstructure:"learning_rate" validate:"required,gt=0,lte=1"`
	// MinLeafWeight is the minimum total sample weight per tree leaf.
	MinLeafWeight float64 `mapstructure:"min_leaf_weight" validate:"required,gt=0"`
	// CalibrationIterations bounds the Platt scaling fit.
	CalibrationIterations int `mapstructure:"calibration_iterations" validate:"required,gt=0"`
}

// ReferenceConfig configures the static champion reference data source.
type ReferenceConfig struct {
	// DDragonURL is the base URL for Data Dragon version lookups.
	DDragonURL string `mapstructure:"ddragon_url" validate:"required,url"`
	// PinnedVersion, when set, bypasses the remote version lookup.
	PinnedVersion string `mapstructure:"pinned_version"`
	// FallbackVersion is returned when the remote lookup fails.
	FallbackVersion string `mapstructure:"fallback_version" validate:"required"`
	// RequestsPerSecond rate-limits version lookups.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	// SkillshotTablePath optionally overrides the built-in skillshot table.
	SkillshotTablePath string `mapstructure:"skillshot_table_path"`
}

// MetricsConfig represents Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// Default returns the configuration pinned to the reference constants.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "lol-win-prediction-analyzer",
			Environment: "development",
			LogLevel:    "info",
		},
		Analysis: AnalysisConfig{
			MapSize:             14870,
			MapCenter:           14870,
			TerritoryMargin:     1000,
			RiverTolerance:      2500,
			EnemyJungleX:        9000,
			ForwardNormBound:    7435,
			FrameToleranceMs:    30000,
			LaneLeadMinute:      14,
			LaneLeadToleranceMs: 120000,
			LaneLeadMatchLimit:  21,
			ExtractParallelism:  4,
		},
		Training: TrainingConfig{
			HistoryWindow:         50,
			MinMatches:            10,
			Trees:                 60,
			MaxDepth:              3,
			LearningRate:          0.1,
			MinLeafWeight:         2.0,
			CalibrationIterations: 500,
		},
		Reference: ReferenceConfig{
			DDragonURL:        "https://ddragon.leagueoflegends.com",
			FallbackVersion:   "14.24.1",
			RequestsPerSecond: 1,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Address: ":9090",
		},
	}
}
