package cmd

import (
	"github.com/rigtools/regroup/internal/core/hostio"
	"github.com/rigtools/regroup/internal/core/logging"
	"github.com/rigtools/regroup/internal/rules"
	"github.com/spf13/cobra"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror INPUT",
	Short: "Swap side markers on group and bone names",
	Long: `Swap the left and right side markers on every group and bone name in
a weight document. Names without a marker pass through unchanged.
Applying mirror twice restores the original names.`,
	Args: cobra.ExactArgs(1),
	RunE: runMirror,
}

func init() {
	mirrorCmd.Flags().String("left", "", "left marker (default from config)")
	mirrorCmd.Flags().String("right", "", "right marker (default from config)")
	mirrorCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(mirrorCmd)
}

func runMirror(cmd *cobra.Command, args []string) error {
	log := logging.GetLogger("mirror")

	left := cfg.LeftMarker
	if cmd.Flags().Changed("left") {
		left, _ = cmd.Flags().GetString("left")
	}
	right := cfg.RightMarker
	if cmd.Flags().Changed("right") {
		right, _ = cmd.Flags().GetString("right")
	}
	if err := rules.ValidateMarkers(left, right); err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")

	doc, err := hostio.Load(args[0])
	if err != nil {
		return err
	}

	swapped := 0
	for i, g := range doc.Groups {
		name, ok := rules.Mirror(g.Name, left, right)
		if ok {
			swapped++
		}
		doc.Groups[i].Name = name
	}
	for i, bone := range doc.Bones {
		name, ok := rules.Mirror(bone, left, right)
		if ok {
			swapped++
		}
		doc.Bones[i] = name
	}

	log.Info().
		Str("object", doc.ObjectName).
		Str("left", left).
		Str("right", right).
		Int("swapped", swapped).
		Msg("side markers mirrored")

	return writeDocument(cmd, output, doc)
}
