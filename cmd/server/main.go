package main

import (
	"os"

	"github.com/spf13/cobra"
)

const configDirFlag = "config-dir"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "kaizen-board",
		Short:        "Kaizen Box suggestion board",
		SilenceUsage: true,
	}
	root.PersistentFlags().String(configDirFlag, "./config", "Directory containing config.yaml")

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	return root
}
