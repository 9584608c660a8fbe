package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "golang-stock-advisor",
	Short: "Stock rating pipeline and recommendation API",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
