// ABOUTME: CLI commands for exporting and importing one account's data.
// ABOUTME: Supports JSON and YAML export; import reads JSON backups.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export an account's data",
	Long: `Export profile, plans, and check-ins for one account.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)

EXAMPLES:

  coach export json --email me@example.com -o backup.json
  coach export yaml --email me@example.com`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser()
		if err != nil {
			return err
		}

		var data []byte
		switch format := args[0]; format {
		case "json":
			data, err = storage.ExportJSON(repo, u.ID)
		case "yaml":
			data, err = storage.ExportYAML(repo, u.ID)
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Exported to %s", exportOutput))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an account's data from JSON",
	Long: `Import profile, plans, and check-ins from a JSON export into an account.

Plans replace any stored plan for the same date. Check-ins already present
are skipped, so re-importing the same file is harmless.

EXAMPLES:

  coach import backup.json --email me@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := requireUser()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		if err := storage.ImportJSON(repo, u.ID, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Imported from %s", args[0]))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	addEmailFlag(exportCmd)
	addEmailFlag(importCmd)

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
