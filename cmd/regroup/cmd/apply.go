package cmd

import (
	"fmt"
	"os"

	"github.com/rigtools/regroup/internal/core/hostio"
	"github.com/rigtools/regroup/internal/core/logging"
	"github.com/rigtools/regroup/internal/rules"
	"github.com/rigtools/regroup/internal/types"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply INPUT",
	Short: "Rename and merge the groups of a weight document",
	Long: `Apply a preset's rulesets to a weight document. Rulesets whose prefix
matches the document's object name are folded in order into one rename
map; groups renamed to the same target have their weights summed and
clamped to 1.0. With --reverse the rename map is inverted to walk a
rename back. The result is written as a new weight document.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().String("preset", "", "preset to apply (default from config)")
	applyCmd.Flags().Bool("reverse", false, "invert the rename map")
	applyCmd.Flags().Bool("sync-bones", false, "rename the document's bone list with the same map")
	applyCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	log := logging.GetLogger("apply")

	presetName, _ := cmd.Flags().GetString("preset")
	reverse, _ := cmd.Flags().GetBool("reverse")
	syncBones, _ := cmd.Flags().GetBool("sync-bones")
	output, _ := cmd.Flags().GetString("output")

	doc, err := hostio.Load(args[0])
	if err != nil {
		return err
	}

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	preset, err := s.GetPreset(presetOrDefault(presetName))
	if err != nil {
		return err
	}

	direction := types.DirectionApply
	if reverse {
		direction = types.DirectionReverse
	}
	idx := rules.Compile(preset.Rulesets, doc.ObjectName, direction)
	log.Debug().
		Str("preset", preset.Name).
		Str("object", doc.ObjectName).
		Stringer("direction", direction).
		Int("mappings", idx.Len()).
		Msg("index compiled")

	result := rules.Transform(doc.ToWeightData(), idx)

	bones := doc.Bones
	if syncBones {
		bones = rules.RenameBones(doc.Bones, idx)
	}

	log.Info().
		Str("object", doc.ObjectName).
		Int("groups_in", len(doc.Groups)).
		Int("groups_out", len(result.Groups)).
		Msg("weight document transformed")

	return writeDocument(cmd, output, hostio.FromWeightData(result, bones))
}

func writeDocument(cmd *cobra.Command, output string, doc hostio.Document) error {
	if output == "" {
		return hostio.Write(cmd.OutOrStdout(), doc)
	}
	if err := hostio.Save(output, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", output)
	return nil
}
