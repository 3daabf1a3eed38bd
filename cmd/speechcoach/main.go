// Package main provides the CLI entrypoint for the speech-coach scoring
// engine: analyze a script, inspect a user's progress, seed demo history.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	historycache "github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/cache"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/config"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/repository"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/service"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/voice"
)

var (
	userID     string
	scriptFile string
	audioFile  string
	seedCount  int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "speechcoach",
		Short:         "Score presentation scripts for nervousness, confidence and clarity",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&userID, "user", "demo", "user id owning the analysis history")
	root.AddCommand(newAnalyzeCmd(), newProgressCmd(), newSeedCmd())
	return root
}

// engine bundles the wired services for one command invocation.
type engine struct {
	analysis *service.AnalysisService
	progress *service.ProgressService
	repo     repository.HistoryRepo
	cleanup  func()
}

func buildEngine(ctx context.Context) (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	aiCfg := config.DefaultAIConfig()
	if cfg.AI.ChatModel != "" {
		aiCfg.ChatModel = cfg.AI.ChatModel
	}
	if cfg.AI.WhisperModel != "" {
		aiCfg.WhisperModel = cfg.AI.WhisperModel
	}
	if !aiCfg.IsEnabled() {
		logrus.Warn("GROQ_API_KEY not set - using rule-based analysis only")
	}

	cleanup := func() {}

	var repo repository.HistoryRepo
	switch cfg.Storage.Backend {
	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Storage.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			return nil, fmt.Errorf("ping mongodb: %w", err)
		}
		repo = repository.NewMongoHistoryRepo(client.Database(cfg.Storage.Database))
		cleanup = func() { _ = client.Disconnect(context.Background()) }
		logrus.WithField("database", cfg.Storage.Database).Info("using mongodb history")
	default:
		repo = repository.NewMemoryHistoryRepo()
		logrus.Info("using in-memory history (set MONGO_URI to persist)")
	}

	var progressCache historycache.ProgressCache
	if cfg.Storage.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("redis unavailable, progress cache disabled")
			_ = rdb.Close()
		} else {
			progressCache = historycache.NewProgressCache(rdb)
			mongoCleanup := cleanup
			cleanup = func() {
				_ = rdb.Close()
				mongoCleanup()
			}
		}
	}

	groq := service.NewGroqService(aiCfg)
	return &engine{
		analysis: service.NewAnalysisService(repo, groq, groq, voice.NewHeuristic(), progressCache),
		progress: service.NewProgressService(repo, progressCache),
		repo:     repo,
		cleanup:  cleanup,
	}, nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [script text]",
		Short: "Analyze a script (and optionally a recording) and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer eng.cleanup()

			script := strings.Join(args, " ")
			if scriptFile != "" {
				data, err := os.ReadFile(scriptFile)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				script = string(data)
			}

			var audio string
			if audioFile != "" {
				data, err := os.ReadFile(audioFile)
				if err != nil {
					return fmt.Errorf("read audio: %w", err)
				}
				audio = base64.StdEncoding.EncodeToString(data)
			}

			if script == "" && audio == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				script = string(data)
			}

			report, err := eng.analysis.Analyze(ctx, service.AnalyzeRequest{
				UserID: userID,
				Script: script,
				Audio:  audio,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&scriptFile, "file", "", "read the script from a file")
	cmd.Flags().StringVar(&audioFile, "audio", "", "attach a recording for transcription and voice analysis")
	return cmd
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Print a user's progress stats and score history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer eng.cleanup()

			stats, err := eng.progress.Stats(ctx, userID)
			if err != nil {
				return err
			}
			series, err := eng.progress.Series(ctx, userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), struct {
				Stats  *model.ProgressStats  `json:"stats"`
				Series *model.ProgressSeries `json:"series"`
			}{stats, series})
		},
	}
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed demo history with an improving score trend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := buildEngine(ctx)
			if err != nil {
				return err
			}
			defer eng.cleanup()

			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			for i := 0; i < seedCount; i++ {
				report := &model.AnalysisReport{
					Scores: model.Scores{
						Nervousness: clamp(40-float64(i)*1.5+jitter(rng), 30, 95),
						Confidence:  clamp(60+float64(i)*2+jitter(rng), 30, 95),
						Clarity:     clamp(55+float64(i)*2+jitter(rng), 30, 95),
					},
					DetectedIssues: []string{"Sample issue 1", "Sample issue 2"},
					ImprovedScript: "Sample improved script",
					OriginalScript: fmt.Sprintf("Sample script %d", i+1),
				}
				if _, err := eng.repo.AppendEntry(ctx, userID, report); err != nil {
					return fmt.Errorf("seed entry %d: %w", i+1, err)
				}
			}
			logrus.WithFields(logrus.Fields{"user": userID, "entries": seedCount}).Info("demo history seeded")

			stats, err := eng.progress.Stats(ctx, userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().IntVar(&seedCount, "count", 10, "number of demo analyses to create")
	return cmd
}

func jitter(rng *rand.Rand) float64 {
	return float64(rng.Intn(11) - 5)
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
