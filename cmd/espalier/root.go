package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier is a branching conversation engine with quizzes",
	Long:  `Espalier runs branching conversation trees with embedded drag-drop quizzes, achievements and scoring, from a single YAML document.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("tree", "t", "tree.yaml", "Path to the conversation document")
}
