package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/guide/internal/app"
	"github.com/five82/guide/internal/media"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "guide: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(out io.Writer) *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "guide",
		Short:         "Kiosk terminal for the Hitchhiker's Guide",
		Long:          "guide boots a full-screen retro terminal with an encyclopedia search, a media library and a mock system console.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/guide/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "override the preferences file")
	flags.StringVar(&opts.DBPath, "db", "", "override the record database")

	root.AddCommand(
		newLookupCmd(&opts),
		newScanCmd(&opts),
		newResetCmd(&opts),
	)
	return root
}

func newLookupCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <query>",
		Short: "Look up one article and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.Open(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			article, err := rt.Searcher.Lookup(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, article.Title)
			fmt.Fprintln(out)
			fmt.Fprintln(out, article.Content)
			for _, src := range article.Sources {
				fmt.Fprintf(out, "\n> %s\n  %s\n", src.Title, src.URI)
			}
			return nil
		},
	}
}

func newScanCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <dir>",
		Short: "List the videos in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := app.Open(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			h, err := media.NewHandle(args[0])
			if err != nil {
				return err
			}
			items, err := rt.Scanner.Scan(cmd.Context(), h)
			if err != nil {
				return fmt.Errorf("scan %s: %w", h.Path, err)
			}
			out := cmd.OutOrStdout()
			for _, item := range items {
				fmt.Fprintf(out, "%-5s %10d  %s\n", item.Format, item.Size, item.Title)
			}
			fmt.Fprintf(out, "%d videos in %s\n", len(items), h.Path)
			return nil
		},
	}
}

func newResetCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget saved preferences and the last scanned directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Open(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "guide state cleared")
			return nil
		},
	}
}
