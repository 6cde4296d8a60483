package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/analysis"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/cache"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/champion"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/config"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/logger"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/training"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	logg       *logrus.Logger

	matchesFile  string
	timelineFile string
	puuid        string
	participant  int
	team         int
	opponent     int
)

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "LoL win-prediction analysis pipeline",
	Long:  `Runs feature extraction, timeline analysis and model training over local match fixtures.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logg = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract feature records from a match fixture file",
	RunE: func(cmd *cobra.Command, args []string) error {
		matches, err := loadMatches(matchesFile)
		if err != nil {
			return err
		}

		extractor := analysis.NewExtractor(skillshotTable(), logg)
		results := extractor.ExtractBatch(cmd.Context(), matches, puuid, cfg.Analysis.ExtractParallelism)

		enc := json.NewEncoder(os.Stdout)
		for _, r := range results {
			if r.Err != nil {
				logg.WithError(r.Err).WithField("match_id", r.MatchID).Warn("Match skipped")
				continue
			}
			if err := enc.Encode(r.Extraction); err != nil {
				return err
			}
		}
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Compute territorial metrics and delta series from a timeline fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := loadTimeline(timelineFile)
		if err != nil {
			return err
		}

		analyzer := analysis.NewTimelineAnalyzer(cfg.Analysis, logg)
		out := struct {
			Territory models.TerritorialSummary `json:"territory"`
			Deltas    []models.FrameDelta       `json:"deltas"`
		}{
			Territory: analyzer.Territory(series, participant, team),
			Deltas:    analyzer.DeltaSeries(series, participant, opponent),
		}
		return printJSON(out)
	},
}

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Aggregate minute-14 lane leads across recent timeline fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(timelineFile)
		if err != nil {
			return fmt.Errorf("failed to read series file: %w", err)
		}
		var perMatch []struct {
			MatchID string              `json:"matchId"`
			Deltas  []models.FrameDelta `json:"deltas"`
		}
		if err := json.Unmarshal(data, &perMatch); err != nil {
			return fmt.Errorf("failed to parse series file: %w", err)
		}

		agg := analysis.NewLeadAggregator(cfg.Analysis)
		samples := make([]models.LaneLeadSample, 0, len(perMatch))
		for _, m := range perMatch {
			if sample, ok := agg.SampleAt(m.MatchID, m.Deltas); ok {
				samples = append(samples, sample)
			}
		}
		return printJSON(agg.Aggregate(samples))
	},
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a win-prediction model from a match fixture file",
	RunE: func(cmd *cobra.Command, args []string) error {
		matches, err := loadMatches(matchesFile)
		if err != nil {
			return err
		}

		extractor := analysis.NewExtractor(skillshotTable(), logg)
		results := extractor.ExtractBatch(cmd.Context(), matches, puuid, cfg.Analysis.ExtractParallelism)
		history := analysis.Records(results)
		if window := cfg.Training.HistoryWindow; len(history) > window {
			history = history[len(history)-window:]
		}

		engine := training.NewEngine(cfg.Training, logg)
		store := cache.NewModelStore(engine, logg)
		model, cached, err := store.GetOrTrain(cmd.Context(), puuid, history)
		if err != nil {
			return fmt.Errorf("training failed: %w", err)
		}
		logg.WithField("cached", cached).Info("Model ready")
		return printJSON(model)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")

	extractCmd.Flags().StringVar(&matchesFile, "matches", "", "JSON file with an array of matches")
	extractCmd.Flags().StringVar(&puuid, "puuid", "", "Player PUUID")
	_ = extractCmd.MarkFlagRequired("matches")
	_ = extractCmd.MarkFlagRequired("puuid")

	timelineCmd.Flags().StringVar(&timelineFile, "timeline", "", "JSON file with one timeline series")
	timelineCmd.Flags().IntVar(&participant, "participant", 0, "Participant ID")
	timelineCmd.Flags().IntVar(&team, "team", models.TeamBlue, "Team ID (100 or 200)")
	timelineCmd.Flags().IntVar(&opponent, "opponent", 0, "Lane opponent participant ID (0 = none)")
	_ = timelineCmd.MarkFlagRequired("timeline")
	_ = timelineCmd.MarkFlagRequired("participant")

	leadsCmd.Flags().StringVar(&timelineFile, "series", "", "JSON file with per-match delta series")
	_ = leadsCmd.MarkFlagRequired("series")

	trainCmd.Flags().StringVar(&matchesFile, "matches", "", "JSON file with an array of matches")
	trainCmd.Flags().StringVar(&puuid, "puuid", "", "Player PUUID")
	_ = trainCmd.MarkFlagRequired("matches")
	_ = trainCmd.MarkFlagRequired("puuid")

	rootCmd.AddCommand(extractCmd, timelineCmd, leadsCmd, trainCmd)
}

func skillshotTable() *champion.SkillshotTable {
	if path := cfg.Reference.SkillshotTablePath; path != "" {
		table, err := champion.LoadTable(path)
		if err != nil {
			logg.WithError(err).Warn("Failed to load skillshot table override; using built-in table")
			return champion.DefaultTable()
		}
		return table
	}
	return champion.DefaultTable()
}

func loadMatches(path string) ([]*models.Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read matches file: %w", err)
	}
	var matches []*models.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse matches file: %w", err)
	}
	return matches, nil
}

func loadTimeline(path string) (*models.TimelineSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline file: %w", err)
	}
	series := &models.TimelineSeries{}
	if err := json.Unmarshal(data, series); err != nil {
		return nil, fmt.Errorf("failed to parse timeline file: %w", err)
	}
	return series, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
