package main

import (
	"os"

	"fuzzydates/cmd"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fuzzydates",
		Short: "Normalize fuzzy dates into calendar dates",
		RunE: func(c *cobra.Command, _ []string) error {
			return cmd.RunDemo(c.OutOrStdout())
		},
	}
	rootCmd.AddCommand(cmd.Db)
	rootCmd.AddCommand(cmd.Normalize)
	rootCmd.AddCommand(cmd.Serve)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
