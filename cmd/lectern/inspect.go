package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/lectern/internal/cli"
	"github.com/aretw0/lectern/internal/presentation/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <deck.pptx>",
	Short: "Print an outline of a .pptx file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		md, err := cli.Inspect(args[0])
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetBool("raw")
		fd := int(os.Stdout.Fd())
		if raw || !term.IsTerminal(fd) {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		width, _, err := term.GetSize(fd)
		if err != nil || width <= 0 {
			width = 80
		}
		render, err := tui.NewRenderer(width)
		if err != nil {
			return err
		}
		out, err := render(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("raw", false, "Print plain Markdown without terminal styling")
}
