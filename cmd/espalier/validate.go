package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/validator"
	"github.com/aretw0/espalier/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the conversation graph for consistency",
	Long:  `Crawls the graph from the document root and reports dead links and malformed quiz nodes.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Graph is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	treePath, _ := cmd.Flags().GetString("tree")
	if !cmd.Flags().Changed("tree") && len(args) > 0 {
		treePath = args[0]
	}

	tree, err := file.Load(treePath)
	if err != nil {
		return err
	}
	return validator.ValidateGraph(tree, tree.Root(), tree.QuizEntry())
}
