package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"errlens/internal/config"
	"errlens/internal/executor"
	"errlens/internal/explain"
	"errlens/internal/harness"
	"errlens/internal/logging"
	"errlens/internal/render"
)

var (
	// Global flags
	verbose     bool
	apiKey      string
	baseURL     string
	model       string
	templateSel string
	configPath  string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "errlens",
	Short: "errlens - AI-powered runtime error explainer",
	Long: `errlens executes Go source in-process, captures any runtime fault as
structured diagnostic data, and asks an AI explanation service to describe
what happened, why, and how to fix it.

Faults in the target code never crash errlens itself: execution failures,
missing files, broken templates and unreachable explanation services all
degrade to readable output.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := logging.Initialize("."); err != nil {
			logger.Warn("debug logging unavailable", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "explanation service API key")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "explanation service base URL")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "model selector (default, fast, pro)")
	rootCmd.PersistentFlags().StringVarP(&templateSel, "template", "t", "", "prompt template (default, detailed, quick)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default .errlens/config.json)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(watchCmd)
}

// buildDebugger assembles the pipeline from config and flag overrides.
func buildDebugger() (*harness.Debugger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model != "" {
		cfg.Model = model
	}
	if templateSel != "" {
		cfg.Template = templateSel
	}

	var renderer *render.Renderer
	if cfg.TemplateDir != "" {
		tf, err := render.NewTemplateFormatter(cfg.TemplateDir)
		if err != nil {
			logger.Warn("template directory unusable, using built-in templates",
				zap.String("dir", cfg.TemplateDir), zap.Error(err))
			renderer = render.NewDefaultRenderer()
		} else {
			renderer = render.NewRenderer(tf)
		}
	} else {
		renderer = render.NewDefaultRenderer()
	}

	service := explain.NewService(explain.NewClientFromConfig(cfg))

	return harness.New(
		executor.NewYaegiExecutor(),
		renderer,
		service,
		harness.WithModel(cfg.Model),
		harness.WithTemplate(cfg.Template),
	), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
