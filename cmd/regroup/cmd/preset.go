package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage rename presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		names, err := s.ListPresets()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a preset's rulesets and rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		preset, err := s.GetPreset(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", preset.Name)
		for _, rs := range preset.Rulesets {
			prefix := rs.Prefix
			if prefix == "" {
				prefix = "(all objects)"
			}
			fmt.Fprintf(out, "  %s  %s\n", rs.Name, prefix)
			for _, rule := range rs.Rules {
				fmt.Fprintf(out, "    %s -> %s\n", rule.Source, rule.Target)
			}
		}
		return nil
	},
}

var presetCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		_, err = s.CreatePreset(args[0])
		return err
	},
}

var presetDuplicateCmd = &cobra.Command{
	Use:   "duplicate SOURCE TARGET",
	Short: "Copy a preset with all of its rulesets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		return s.DuplicatePreset(args[0], args[1])
	},
}

var presetRenameCmd = &cobra.Command{
	Use:   "rename OLD NEW",
	Short: "Rename a preset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		return s.RenamePreset(args[0], args[1])
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a preset and its rulesets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		return s.DeletePreset(args[0])
	},
}

var presetExportCmd = &cobra.Command{
	Use:   "export [NAME...]",
	Short: "Export presets as JSON (all presets when no names given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			return s.Export(cmd.OutOrStdout(), args...)
		}
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		if err := s.Export(f, args...); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

var presetImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import presets from JSON, replacing same-named presets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		count, err := s.Import(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d preset(s)\n", count)
		return nil
	},
}

func init() {
	presetExportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetShowCmd)
	presetCmd.AddCommand(presetCreateCmd)
	presetCmd.AddCommand(presetDuplicateCmd)
	presetCmd.AddCommand(presetRenameCmd)
	presetCmd.AddCommand(presetDeleteCmd)
	presetCmd.AddCommand(presetExportCmd)
	presetCmd.AddCommand(presetImportCmd)
	rootCmd.AddCommand(presetCmd)
}
