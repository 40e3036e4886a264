package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gotrs-io/gotrs-rtl/internal/audit"
	"github.com/gotrs-io/gotrs-rtl/internal/config"
)

var lintCmd = &cobra.Command{
	Use:   "lint [template-dir]",
	Short: "Report physical layout classes used in templates",
	Long: `Scans .pongo2, .html and .tmpl files for class attributes that use
physical utilities (ml-*, text-left, border-r, ...) and suggests the logical
replacement. Defaults to templates.dir from the configuration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

var xlatCmd = &cobra.Command{
	Use:   "xlat [template-dir]",
	Short: "Check translation files against the keys templates use",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runXlat,
}

var (
	lintStrictFlag   bool
	xlatStrictFlag   bool
	translationsFlag string
	languagesFlag    string
)

func init() {
	lintCmd.Flags().BoolVar(&lintStrictFlag, "strict", false, "Exit with an error when findings are reported")

	xlatCmd.Flags().BoolVar(&xlatStrictFlag, "strict", false, "Exit with an error when keys are missing")
	xlatCmd.Flags().StringVar(&translationsFlag, "translations", "", "Directory with <lang>.json files (defaults to i18n.translations_dir)")
	xlatCmd.Flags().StringVar(&languagesFlag, "languages", "en", "Comma-separated list of languages to check")

	rootCmd.AddCommand(lintCmd, xlatCmd)
}

func templateDirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.Get().Templates.Dir
}

func runLint(cmd *cobra.Command, args []string) error {
	a, err := newAdapter()
	if err != nil {
		return err
	}

	dir := templateDirArg(args)
	files, err := audit.FindTemplates(dir)
	if err != nil {
		return err
	}
	logger.Debug("scanning templates", zap.String("dir", dir), zap.Int("files", len(files)))

	findings, err := audit.LintClasses(files, a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range findings {
		fmt.Fprintf(out, "%s:%d: %s -> %s\n", f.File, f.Line, f.Class, f.Suggestion)
	}
	fmt.Fprintf(out, "%d physical classes in %d files\n", len(findings), len(files))

	if lintStrictFlag && len(findings) > 0 {
		return fmt.Errorf("found %d physical classes", len(findings))
	}
	return nil
}

func runXlat(cmd *cobra.Command, args []string) error {
	files, err := audit.FindTemplates(templateDirArg(args))
	if err != nil {
		return err
	}
	used, err := audit.ExtractKeys(files)
	if err != nil {
		return err
	}

	dir := translationsFlag
	if dir == "" {
		dir = config.Get().I18n.TranslationsDir
	}

	out := cmd.OutOrStdout()
	missing := 0
	for _, lang := range strings.Split(languagesFlag, ",") {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		translations, err := audit.LoadTranslations(dir, lang)
		if err != nil {
			return err
		}
		report := audit.CompareKeys(lang, used, translations)
		missing += len(report.Missing)

		fmt.Fprintf(out, "=== %s: %d missing, %d unused ===\n", lang, len(report.Missing), len(report.Unused))
		for _, key := range report.Missing {
			fmt.Fprintf(out, "  missing %s\n", key)
		}
		for _, key := range report.Unused {
			fmt.Fprintf(out, "  unused  %s\n", key)
		}
	}

	if xlatStrictFlag && missing > 0 {
		return fmt.Errorf("%d translation keys missing", missing)
	}
	return nil
}
