// Command csvnexus starts an interactive shell for merging, sorting and
// exporting delimited data files from a single directory.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvnexus/internal/config"
	"github.com/JonMunkholm/csvnexus/internal/logging"
	"github.com/JonMunkholm/csvnexus/internal/shell"
)

// flags holds command line overrides. Empty values leave the environment
// configuration untouched.
type flags struct {
	delimiter string
	quote     string
	logLevel  string
	logFormat string
	force     bool
	crlf      bool
}

func main() {
	// Load .env file if it exists; real environment variables take precedence
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cmd := newRootCmd(os.Stdin, os.Stdout)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "csvnexus: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "csvnexus [directory]",
		Short: "Merge, sort and export delimited data files interactively",
		Long: `csvnexus opens a shell over a directory of delimited files.

Files with the same four-column header are merged into one dataset, each row
tagged with the name of the file it came from. The dataset can be viewed,
sorted by any column and exported back to the directory.

Settings are read from the environment (CSVNEXUS_DIR, CSVNEXUS_DELIMITER,
CSVNEXUS_QUOTE, LOG_LEVEL, ...) and a .env file; flags override both.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, in, out)
		},
	}

	cmd.Flags().StringVarP(&f.delimiter, "delimiter", "d", "", "field delimiter (overrides CSVNEXUS_DELIMITER)")
	cmd.Flags().StringVarP(&f.quote, "quote", "q", "", "quote character (overrides CSVNEXUS_QUOTE)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "overwrite existing files on export without asking")
	cmd.Flags().BoolVar(&f.crlf, "crlf", false, "end exported records with CRLF")

	return cmd
}

// loadConfig reads the environment configuration and applies flag and
// argument overrides on top of it.
func loadConfig(cmd *cobra.Command, args []string, f flags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if len(args) == 1 {
		cfg.Shell.Dir = args[0]
	}
	if f.delimiter != "" {
		cfg.Dialect.Delimiter = f.delimiter
	}
	if f.quote != "" {
		cfg.Dialect.Quote = f.quote
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	if cmd.Flags().Changed("force") {
		cfg.Export.ForceOverwrite = f.force
	}
	if cmd.Flags().Changed("crlf") {
		cfg.Dialect.CRLF = f.crlf
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	slog.Debug("configuration loaded", "config", cfg.String())

	info, err := os.Stat(cfg.Shell.Dir)
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("working directory %s: not a directory", cfg.Shell.Dir)
	}

	dialect, err := cfg.Dialect.Dialect()
	if err != nil {
		return err
	}

	sh := shell.New(shell.Options{
		Dir:            cfg.Shell.Dir,
		Dialect:        dialect,
		Prompt:         cfg.Shell.Prompt,
		FileExt:        cfg.Shell.FileExt,
		ForceOverwrite: cfg.Export.ForceOverwrite,
	}, in, out)

	return sh.Run(ctx)
}
