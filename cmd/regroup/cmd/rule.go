package cmd

import (
	"github.com/spf13/cobra"
)

var (
	rulePreset  string
	ruleRuleset string
)

var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage rename rules within a ruleset",
}

var ruleAddCmd = &cobra.Command{
	Use:   "add SOURCE TARGET",
	Short: "Append a rename rule to a ruleset",
	Long:  `Append a rename rule to a ruleset. When the application of a preset maps several sources to the same target, their weights are merged.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		return s.AddRule(presetOrDefault(rulePreset), ruleRuleset, args[0], args[1])
	},
}

var ruleRemoveCmd = &cobra.Command{
	Use:   "remove SOURCE",
	Short: "Remove the rule for a source name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		return s.RemoveRule(presetOrDefault(rulePreset), ruleRuleset, args[0])
	},
}

func init() {
	ruleCmd.PersistentFlags().StringVar(&rulePreset, "preset", "", "preset the ruleset belongs to (default from config)")
	ruleCmd.PersistentFlags().StringVar(&ruleRuleset, "ruleset", "", "ruleset to edit")
	ruleCmd.MarkPersistentFlagRequired("ruleset")

	ruleCmd.AddCommand(ruleAddCmd)
	ruleCmd.AddCommand(ruleRemoveCmd)
	rootCmd.AddCommand(ruleCmd)
}
