package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gotrs-io/gotrs-rtl/internal/config"
	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
	"github.com/gotrs-io/gotrs-rtl/internal/server"
	"github.com/gotrs-io/gotrs-rtl/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the direction HTTP service",
	RunE:  runServe,
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their direction",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tNATIVE\tDIR")
		for _, l := range i18n.GetEnabledLanguages() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Code, l.Name, l.NativeName, l.Direction)
		}
		w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gotrs-rtl %s\n", version.GetInfo().Full())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, languagesCmd, versionCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := server.New(config.Get(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config.OnChange(s.ApplyConfig)
	if err := config.Watch(ctx, logger); err != nil {
		return err
	}

	return s.Run(ctx)
}
