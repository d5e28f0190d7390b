package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize journal configuration and storage",
		Long:  "Create the configuration and data directories, write config.yaml if missing,\nand create the journal database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// An explicit --data-dir is remembered for later runs.
			if a.flags.dataDir != "" {
				dataDir, err := a.dataDir()
				if err != nil {
					return sysError(err)
				}
				if err := setConfigValue(a.configDir, cfgKeyDataDir, dataDir); err != nil {
					return sysError(fmt.Errorf("write config: %w", err))
				}
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			path := store.Path()
			if err := store.Close(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, map[string]string{"config_dir": a.configDir, "database": path})
			}
			a.palette.successf(out, "Journal initialized successfully\n")
			fmt.Fprintln(out, "  config:  ", a.configDir)
			fmt.Fprintln(out, "  database:", path)
			return nil
		},
	}
}
