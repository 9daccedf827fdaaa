package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/lifeledger/internal/cli"
)

func undoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the most recent change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			desc := tr.UndoDescription()
			undone, err := tr.Undo(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to undo: %w", err)
			}

			reportChange(cmd.OutOrStdout(), undone, "Undid "+desc, "Nothing to undo")
			return nil
		},
	}
}

func redoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the most recently undone change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			desc := tr.RedoDescription()
			redone, err := tr.Redo(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to redo: %w", err)
			}

			reportChange(cmd.OutOrStdout(), redone, "Redid "+desc, "Nothing to redo")
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show what undo and redo would do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			entries := tr.History()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No history yet."))
				return nil
			}
			for _, e := range entries {
				if e.Undone {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("  ↷ " + e.Description + " (undone)"))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), "  ↶ " + e.Description)
			}
			return nil
		},
	}
}
