package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"note-ledger/internal/config"
	"note-ledger/internal/extractor"
	"note-ledger/internal/ocr"
	_ "note-ledger/internal/ocr/cli" // регистрирует движок "cli"
	"note-ledger/internal/repository/memory"
	notesService "note-ledger/internal/service/notes"
	"note-ledger/internal/session"
)

var (
	configFile string
	verbose    bool
	engineName string
	language   string

	appConfig *config.Config
	logger    *slog.Logger
)

// rootCmd запускает интерактивную сессию, если подкоманда не указана
var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "A console note ledger with OCR import",
	Long: `Ledger keeps short text notes in memory for the duration of one run.
Notes can be typed in or recognized from an image file with Tesseract OCR.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if engineName != "" {
			cfg.OCR.Engine = engineName
		}
		if language != "" {
			cfg.OCR.Language = language
		}

		level := cfg.Logger.LogLevel()
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		appConfig = cfg
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ex, err := newExtractor(appConfig.OCR, logger)
		if err != nil {
			return err
		}

		// Инициализация компонентов (DI): Repository → Service → Session
		noteRepo := memory.NewRepository()
		noteSvc := notesService.NewNoteService(noteRepo, ex, logger)
		logger.Debug("initialized note ledger", "engine", appConfig.OCR.Engine, "language", appConfig.OCR.Language)

		err = session.New(noteSvc, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(ctx)
		if errors.Is(err, context.Canceled) {
			logger.Info("interrupted, exiting")
			return nil
		}
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("ledger", err)
	}
}

// newEngine выбирает движок распознавания по конфигурации
func newEngine(cfg *config.ConfigOCR) (ocr.Engine, error) {
	name := cfg.Engine
	if name == "" {
		name = ocr.EngineCLI
	}

	engine, err := ocr.Open(name, ocr.Options{Binary: cfg.Binary})
	if errors.Is(err, ocr.ErrUnknownEngine) && name == ocr.EngineTesseract {
		return nil, fmt.Errorf("ocr engine %q is not compiled in, rebuild with -tags gosseract: %w", name, err)
	}
	return engine, err
}

func newExtractor(cfg *config.ConfigOCR, logger *slog.Logger) (*extractor.Extractor, error) {
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	return extractor.New(
		ocr.WithLogging(engine, logger),
		extractor.WithLanguages(ocr.FirstLanguage([]string{cfg.Language})),
		extractor.WithTempDir(cfg.TempDir),
		extractor.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		extractor.WithLogger(logger),
	), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "OCR engine: cli or tesseract")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "OCR language hint (e.g. eng)")
}
