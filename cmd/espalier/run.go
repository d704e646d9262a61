package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the conversation interactively",
	Long:  `Starts the engine in interactive mode with the conversation document from --tree.`,
	Run: func(cmd *cobra.Command, args []string) {
		treePath, _ := cmd.Flags().GetString("tree")
		if !cmd.Flags().Changed("tree") && len(args) > 0 {
			treePath = args[0]
		}
		plain, _ := cmd.Flags().GetBool("plain")

		engine, err := espalier.New(treePath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		runner := espalier.NewRunner()
		runner.Input = os.Stdin
		runner.Output = os.Stdout
		if !plain {
			tui.PrintBanner()
			runner.Presenter = tui.NewPresenter(os.Stdout)
		}

		if err := runner.Run(engine); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("plain", false, "Disable the banner and markdown rendering")

	// Make 'run' the default when no subcommand is given.
	rootCmd.Run = runCmd.Run
}
