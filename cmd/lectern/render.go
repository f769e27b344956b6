package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/lectern/internal/cli"
)

var renderCmd = &cobra.Command{
	Use:   "render [request.json]",
	Short: "Build a deck from a JSON request file",
	Long:  `Reads a presentation request from a file, or from stdin when no file or "-" is given, and writes the .pptx.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		cfg.Fetch.AllowLocalFiles, _ = cmd.Flags().GetBool("allow-local-files")
		logger := newLogger(cfg)

		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
			// Relative image paths in a request file are relative to that file.
			if cfg.Fetch.BaseDir == "" {
				cfg.Fetch.BaseDir = filepath.Dir(args[0])
			}
		}

		rt, err := cli.NewRuntime(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		tty := term.IsTerminal(int(os.Stdout.Fd()))
		path, art, err := cli.Render(cmd.Context(), rt.Service, in, output, cmd.OutOrStdout(), tty)
		if err != nil {
			return err
		}
		if path != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d slides, %d skipped elements)\n", path, art.Slides, art.Skipped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("output", "o", "", `Output file, or "-" for stdout (default: derived from the deck title)`)
	renderCmd.Flags().Bool("allow-local-files", true, "Resolve image references that are plain file paths")
}
