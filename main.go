package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"addrbook/internal/di"
	"addrbook/internal/structures"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	cmd := &cobra.Command{
		Use:          "addressbook",
		Short:        "Interactive address book with birthday reminders",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.ConfigRequired = cmd.Flags().Changed("config")

			app, err := di.InitApp(flags)
			if err != nil {
				return fmt.Errorf("unable to start: %w", err)
			}
			defer app.Close()

			return app.Run(os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the config file")
	cmd.Flags().StringVarP(&flags.FilePath, "file", "f", "", "address book file, overrides persistence.filePath")
	cmd.Flags().BoolVar(&flags.DebugMode, "debug", false, "enable debug logging")
	return cmd
}
