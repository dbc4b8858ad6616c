package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/panomux/internal/check"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the ffmpeg installation",
	Long: `Check resolves ffmpeg the same way merge does: a bundled copy next
to the executable first, then $PATH. It reports the resolved path, origin
and version, and fails when no usable installation exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return check.Run(cmd.Context(), log)
	},
}
