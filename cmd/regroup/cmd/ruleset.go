package cmd

import (
	"github.com/spf13/cobra"
)

var rulesetPreset string

var rulesetCmd = &cobra.Command{
	Use:   "ruleset",
	Short: "Manage rulesets within a preset",
}

var rulesetAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Append a ruleset to a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		prefix, _ := cmd.Flags().GetString("prefix")
		_, err = s.AddRuleset(presetOrDefault(rulesetPreset), args[0], prefix)
		return err
	},
}

var rulesetRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a ruleset and its rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		return s.RemoveRuleset(presetOrDefault(rulesetPreset), args[0])
	},
}

var rulesetSetPrefixCmd = &cobra.Command{
	Use:   "set-prefix NAME PREFIX",
	Short: "Scope a ruleset to objects whose name starts with PREFIX",
	Long:  `Scope a ruleset to objects whose name starts with PREFIX. Matching is case-insensitive; an empty prefix scopes the ruleset to every object.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		return s.SetRulesetPrefix(presetOrDefault(rulesetPreset), args[0], args[1])
	},
}

func init() {
	rulesetCmd.PersistentFlags().StringVar(&rulesetPreset, "preset", "", "preset the ruleset belongs to (default from config)")
	rulesetAddCmd.Flags().String("prefix", "", "object name prefix the ruleset is scoped to")

	rulesetCmd.AddCommand(rulesetAddCmd)
	rulesetCmd.AddCommand(rulesetRemoveCmd)
	rulesetCmd.AddCommand(rulesetSetPrefixCmd)
	rootCmd.AddCommand(rulesetCmd)
}
