package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gotrs-io/gotrs-rtl/internal/direction"
	"github.com/gotrs-io/gotrs-rtl/internal/htmldoc"
)

var classesCmd = &cobra.Command{
	Use:   "classes [class...]",
	Short: "Adapt utility classes for the selected language",
	Long: `Rewrites physical utility classes (ml-4, text-left, border-r-2, ...) into
their logical equivalents and appends the direction marker class.

Example:
  gotrs-rtl classes --lang fa "ml-2 mr-4 text-left"`,
	RunE: runClasses,
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print flex, alignment, icon and component classes",
	RunE:  runLayout,
}

var spacingCmd = &cobra.Command{
	Use:   "spacing <property> <value>",
	Short: "Convert a physical margin/padding property to inline-start/end",
	Args:  cobra.ExactArgs(2),
	RunE:  runSpacing,
}

var chartCmd = &cobra.Command{
	Use:   "chart [file]",
	Short: "Mirror a chart configuration (JSON) for RTL layouts",
	Long: `Reads a chart configuration from file, or stdin when no file or "-" is
given, and writes the adapted configuration as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChart,
}

var htmlCmd = &cobra.Command{
	Use:   "html [file]",
	Short: "Apply dir/lang to an HTML document and optionally mirror its classes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHTML,
}

var (
	noMarkerFlag  bool
	flexFlag      string
	alignFlag     string
	iconFlag      string
	componentFlag string
	mirrorFlag    bool
	sanitizeFlag  bool
	outputFlag    string
)

func init() {
	classesCmd.Flags().BoolVar(&noMarkerFlag, "no-marker", false, "Do not append the direction marker class")

	layoutCmd.Flags().StringVar(&flexFlag, "flex", "row", "Flex direction: row or column")
	layoutCmd.Flags().StringVar(&alignFlag, "align", "left", "Text alignment: left, right or center")
	layoutCmd.Flags().StringVar(&iconFlag, "icon", "start", "Icon position: start or end")
	layoutCmd.Flags().StringVar(&componentFlag, "component", "", "Component type (sidebar, dropdown, modal, ...)")

	htmlCmd.Flags().BoolVar(&mirrorFlag, "mirror", false, "Rewrite class attributes to logical classes")
	htmlCmd.Flags().BoolVar(&sanitizeFlag, "sanitize", false, "Sanitize the input before rewriting")
	htmlCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the result to this file instead of stdout")

	rootCmd.AddCommand(classesCmd, layoutCmd, spacingCmd, chartCmd, htmlCmd)
}

func runClasses(cmd *cobra.Command, args []string) error {
	a, err := newAdapter()
	if err != nil {
		return err
	}

	input := strings.Join(args, " ")
	if noMarkerFlag {
		tokens := strings.Fields(input)
		for i, token := range tokens {
			tokens[i] = a.AdaptClass(token)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, " "))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.LayoutClasses(input))
	return nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	a, err := newAdapter()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "direction:  %s\n", a.Direction())
	fmt.Fprintf(out, "flex:       %s\n", a.FlexDirection(flexFlag))
	fmt.Fprintf(out, "text-align: %s\n", a.TextAlign(alignFlag))
	fmt.Fprintf(out, "icon:       %s\n", a.IconClasses(iconFlag))
	if componentFlag != "" {
		fmt.Fprintf(out, "component:  %s\n", a.DirectionalClasses(componentFlag))
	}
	return nil
}

func runSpacing(cmd *cobra.Command, args []string) error {
	a, err := newAdapter()
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), a.MarginPadding(args[0], args[1]))
}

func runChart(cmd *cobra.Command, args []string) error {
	a, err := newAdapter()
	if err != nil {
		return err
	}

	r, closeFn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	var cfg direction.ChartConfig
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return fmt.Errorf("failed to decode chart configuration: %w", err)
	}

	logger.Debug("adapting chart configuration", zap.String("direction", string(a.Direction())))
	return writeJSON(cmd.OutOrStdout(), a.AdaptChartConfig(cfg))
}

func runHTML(cmd *cobra.Command, args []string) error {
	a, err := newAdapter()
	if err != nil {
		return err
	}

	r, closeFn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeFn()

	if sanitizeFlag {
		r = htmldoc.NewSanitizer().Sanitize(r)
	}
	doc, err := htmldoc.Parse(r)
	if err != nil {
		return err
	}

	a.ApplyDocumentDirection(doc)
	if mirrorFlag {
		n := doc.MirrorClasses(a)
		logger.Info("mirrored classes", zap.Int("rewritten", n), zap.String("direction", string(a.Direction())))
	}

	if outputFlag == "" {
		return doc.Render(cmd.OutOrStdout())
	}
	f, err := os.Create(outputFlag)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputFlag, err)
	}
	defer f.Close()
	return doc.Render(f)
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	return f, func() { f.Close() }, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
