package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/lifeledger/internal/tui"
	"github.com/Veraticus/lifeledger/internal/tui/themes"
)

func streakCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:     "streak",
		Aliases: []string{"achievements"},
		Short:   "Show your recording streak and points",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderStreak(tr.Achievements(), width, themes.Default))
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 60, "width of the star arc")

	return cmd
}
