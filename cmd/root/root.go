// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/camt-fix/internal/config"
	"fjacquet/camt-fix/internal/container"
	"fjacquet/camt-fix/internal/logging"

	"github.com/spf13/cobra"
)

// SkipConfigAnnotation marks commands that run without loading configuration.
const SkipConfigAnnotation = "camt-fix/skip-config"

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	Validate   bool
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Version is set at build time with -ldflags "-X fjacquet/camt-fix/cmd/root.Version=...".
	Version = "dev"

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "camt-fix",
		Short: "A CLI tool to rewrite Wise CAMT.053.001.10 statements as CAMT.053.001.02.",
		Long: `camt-fix is a CLI tool that rewrites CAMT.053.001.10 bank statements exported
by Wise into the CAMT.053.001.02 shape expected by accounting importers.

It downgrades the namespace, flattens entry statuses, removes the totals block,
moves additional entry information into the remittance text, makes sure every
entry has a servicer reference and truncates date-times to dates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Welcome to camt-fix!")
			fmt.Fprintln(cmd.OutOrStdout(), "Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	initOnce     sync.Once
	mu           sync.RWMutex
	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (or directory for batch)")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (or directory for batch)")
		Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Check that the output is a camt.053 statement before writing it")
		Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.camt-fix, .camt-fix and .)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
	})
}

// initialize loads the configuration, applies flag overrides and builds the
// application container.
func initialize(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[SkipConfigAnnotation] == "true" {
		return nil
	}

	config.LoadEnv()
	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}

	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	SetContainer(c)
	return nil
}

// SetContainer replaces the application container.
func SetContainer(c *container.Container) {
	mu.Lock()
	defer mu.Unlock()
	appContainer = c
}

// GetContainer returns the application container, nil before initialization.
func GetContainer() *container.Container {
	mu.RLock()
	defer mu.RUnlock()
	return appContainer
}

// GetLogger returns the container logger, or a discarding one before initialization.
func GetLogger() logging.Logger {
	if c := GetContainer(); c != nil {
		return c.GetLogger()
	}
	return logging.Discard()
}
