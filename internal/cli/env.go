package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/cmdassist/internal/configloader"
	"github.com/yaklabco/cmdassist/internal/logging"
	"github.com/yaklabco/cmdassist/internal/ui/pretty"
	"github.com/yaklabco/cmdassist/pkg/config"
	"github.com/yaklabco/cmdassist/pkg/linter"
	"github.com/yaklabco/cmdassist/pkg/pack"
	"github.com/yaklabco/cmdassist/pkg/session"
)

// environment holds what most commands need: the resolved configuration
// and the pack it names.
type environment struct {
	ctx     context.Context
	cfg     *config.Config
	pack    *pack.Pack
	lint    linter.Options
	workDir string
	logger  *log.Logger
}

// loadEnvironment resolves the configuration with cliCfg as the highest
// layer, then loads the pack. cliCfg may be nil.
func loadEnvironment(cmd *cobra.Command, cliCfg *config.Config) (*environment, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	flags := cmd.Flags()
	if flags.Changed(flagPack) {
		cliCfg.Pack, _ = flags.GetString(flagPack)
	}
	if flags.Changed(flagColor) {
		color, _ := flags.GetString(flagColor)
		cliCfg.Color = config.ColorMode(color)
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := flags.GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}
	cfg := loadResult.Config

	if debug, _ := flags.GetBool(flagDebug); !debug {
		logging.SetLevel(cfg.LogLevel)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	lint, err := cfg.LinterOptions()
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	p, err := loadPack(logger, cfg.Pack)
	if err != nil {
		return nil, err
	}

	return &environment{
		ctx:     logging.WithLogger(ctx, logger),
		cfg:     cfg,
		pack:    p,
		lint:    lint,
		workDir: workDir,
		logger:  logger,
	}, nil
}

func loadPack(logger *log.Logger, path string) (*pack.Pack, error) {
	if path == "" {
		p, err := pack.Builtin()
		if err != nil {
			return nil, fmt.Errorf("load builtin pack: %w", err)
		}
		logger.Debug("using builtin pack", logging.FieldPack, p.Manifest.Name)
		return p, nil
	}

	p, err := pack.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load pack: %w", err)
	}
	logger.Info("loaded pack",
		logging.FieldPack, p.Manifest.Name,
		logging.FieldPath, path,
		logging.FieldCommands, p.Graph.Commands().Len(),
		logging.FieldNodes, p.Graph.Len())
	return p, nil
}

// newSession returns a session over the environment's pack.
func (e *environment) newSession() *session.Session {
	return session.New(e.pack,
		session.WithLinterOptions(e.lint),
		session.WithLogger(e.logger))
}

// styles returns the terminal styles for w.
func (e *environment) styles(w io.Writer) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(string(e.cfg.Color), w))
}

// inputText joins args into one command, or reads standard input when
// there are none. A trailing line break is dropped.
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read standard input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// cursorOffset resolves a --cursor value against text; negative values
// count back from the end, so -1 is the end of the text.
func cursorOffset(cursor int, text string) int {
	if cursor < 0 {
		cursor = len(text) + 1 + cursor
	}
	return max(0, min(cursor, len(text)))
}
