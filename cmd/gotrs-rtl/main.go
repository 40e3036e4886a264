package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gotrs-io/gotrs-rtl/internal/config"
	"github.com/gotrs-io/gotrs-rtl/internal/direction"
	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
	"github.com/gotrs-io/gotrs-rtl/internal/logging"
	"github.com/gotrs-io/gotrs-rtl/internal/version"
)

var (
	configFlag    string
	langFlag      string
	directionFlag string
	verbose       bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gotrs-rtl",
	Short: "Direction-aware layout tooling for GOTRS templates",
	Long: `gotrs-rtl adapts physical layout classes, chart configurations and HTML
documents to right-to-left and left-to-right languages.

It can run as an HTTP service, audit templates for classes that are not
direction aware, and check translation files against template usage.`,
	Version:       version.GetInfo().String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(configFlag); err != nil {
			return err
		}
		l, err := logging.New(config.Get().Logging, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file, or directory holding default.yaml/config.yaml")
	rootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "Language code (defaults to i18n.default_language)")
	rootCmd.PersistentFlags().StringVar(&directionFlag, "dir", "", "Force the direction (ltr or rtl) instead of deriving it from the language")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func loadConfig(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("config not found: %w", err)
	}
	if info.IsDir() {
		return config.Load(path)
	}
	return config.LoadFromFile(path)
}

// currentLanguage returns --lang or the configured default language.
func currentLanguage() string {
	if langFlag != "" {
		return langFlag
	}
	return config.Get().I18n.DefaultLanguage
}

// newAdapter builds the adapter for the command line flags and the
// configured rules file.
func newAdapter() (*direction.Adapter, error) {
	rules, err := direction.LoadRulesFile(config.Get().I18n.RulesFile)
	if err != nil {
		return nil, err
	}
	var opts []direction.Option
	if len(rules) > 0 {
		opts = append(opts, direction.WithRules(rules...))
	}

	lang := currentLanguage()
	switch directionFlag {
	case "":
		return direction.ForLanguage(lang, opts...), nil
	case string(i18n.LTR), string(i18n.RTL):
		return direction.NewAdapter(lang, i18n.LanguageDirection(directionFlag), opts...), nil
	default:
		return nil, fmt.Errorf("invalid --dir %q: must be ltr or rtl", directionFlag)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
