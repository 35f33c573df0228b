package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator"
)

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

var rootCmd = &cobra.Command{
	Use:   "docx-templator",
	Short: "Generate Word documents from a template and a data table",
	Long: `docx-templator fills the {placeholders} of a DOCX template with the rows of a
CSV, TSV or XLSX file and writes one document per row, keeping the template's formatting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyColorMode(colorMode)
	},
}

var (
	configPath string
	logLevel   string
	colorMode  string
)

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error|off)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output (auto|on|off)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, rootCmd)
	stop()
	os.Exit(code)
}

// execute runs cmd and maps its error to the process exit code:
// 0 on success, 2 when generation was aborted before writing, 1 otherwise.
func execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	stderr := cmd.ErrOrStderr()
	errorColor.Fprintf(stderr, "Error: %v\n", err)
	if errors.Is(err, templator.ErrAborted) {
		fmt.Fprintln(stderr, "No documents were written.")
		return 2
	}
	return 1
}

func applyColorMode(mode string) error {
	switch mode {
	case "auto":
		color.NoColor = color.NoColor || !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (use auto, on or off)", mode)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// loadConfig layers environment, config file and command line flags over the defaults
func loadConfig(cmd *cobra.Command) (*templator.Config, error) {
	config := templator.ConfigFromEnvironment()

	if configPath != "" {
		if err := config.LoadConfigFile(configPath); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("log-level") {
		config.LogLevel = logLevel
	}
	if err := applyFlags(cmd, config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	templator.UpdateLoggerFromConfig(config)
	return config, nil
}
