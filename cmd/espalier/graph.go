package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/espalier"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the conversation graph as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		treePath, _ := cmd.Flags().GetString("tree")

		engine, err := espalier.New(treePath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		nodes, err := engine.Inspect()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(nodes, "", "  ")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
