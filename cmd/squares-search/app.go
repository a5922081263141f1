package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/config"
	"svw.info/magicsquares/internal/infrastructure/storage"
	"svw.info/magicsquares/internal/ports"
	"svw.info/magicsquares/internal/usecase"
	"svw.info/magicsquares/internal/validator"
)

// app carries flag values and the loaded configuration between cobra hooks.
type app struct {
	cfgPath   string
	outputDir string
	logLevel  string
	ledger    bool
	threshold int

	cfg *config.Config
	log *zap.Logger
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.Search.OutputDir = a.outputDir
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("ledger") {
		cfg.Ledger.Enabled = a.ledger
	}
	if flags.Changed("threshold") {
		cfg.Search.Threshold = a.threshold
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	a.log, err = buildLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log.Debug("configuration loaded",
		zap.String("config", a.cfgPath),
		zap.String("backend", arith.Backend),
		zap.String("output_dir", cfg.Search.OutputDir),
		zap.Int("threshold", cfg.Search.Threshold),
		zap.Bool("ledger", cfg.Ledger.Enabled),
	)
	return nil
}

// buildLogger writes to w only; stdout belongs to the line protocol.
func buildLogger(cfg config.LoggingConfig, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

// service wires the emitter, validator and optional ledger. The returned
// func closes the ledger.
func (a *app) service(ctx context.Context) (*usecase.Service, func(), error) {
	var (
		ledger  ports.Ledger
		closeFn = func() {}
	)
	if a.cfg.Ledger.Enabled {
		l, err := storage.OpenLedger(ctx, a.cfg.Ledger.Path)
		if err != nil {
			return nil, nil, err
		}
		ledger = l
		closeFn = func() {
			if err := l.Close(); err != nil {
				a.log.Warn("closing ledger", zap.Error(err))
			}
		}
	}
	var v ports.Validator
	if a.cfg.Search.Validate {
		v = validator.New()
	}
	svc := usecase.NewService(storage.NewFS(a.cfg.Search.OutputDir), v, ledger, a.log)
	svc.Threshold = a.cfg.Search.Threshold
	return svc, closeFn, nil
}
