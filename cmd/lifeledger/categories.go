package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/lifeledger/internal/cli"
	"github.com/Veraticus/lifeledger/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
		Long: `List categories and add or remove custom income and expense categories.
Removing a custom category moves its transactions to 其他.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(removeCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			custom := tr.CustomCategories()
			for _, typ := range []model.TransactionType{model.TypeExpense, model.TypeIncome, model.TypeTransfer} {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatTitle(typ.Label()))
				for _, name := range tr.CategoriesFor(typ) {
					if slices.Contains(custom.For(typ), name) {
						name += cli.SubtleStyle.Render(" (custom)")
					}
					fmt.Fprintln(cmd.OutOrStdout(), "  " + name)
				}
			}
			return nil
		},
	}
}

// categoryType reads the --type flag shared by add and remove.
func categoryType(s string) (model.TransactionType, error) {
	t := model.TransactionType(strings.ToLower(s))
	if !model.CustomizableType(t) {
		return "", fmt.Errorf("custom categories are only supported for income and expense, got %q", s)
	}
	return t, nil
}

func addCategoryCmd() *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := categoryType(typ)
			if err != nil {
				return err
			}

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := tr.AddCategory(cmd.Context(), t, args[0]); err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s category %q", t.Label(), args[0])))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", string(model.TypeExpense), "income or expense")

	return cmd
}

func removeCategoryCmd() *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"delete"},
		Short:   "Remove a custom category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := categoryType(typ)
			if err != nil {
				return err
			}

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := tr.RemoveCategory(cmd.Context(), t, args[0]); err != nil {
				return fmt.Errorf("failed to remove category: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Removed %s category %q; its transactions moved to %s",
				t.Label(), args[0], model.SentinelCategory)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", string(model.TypeExpense), "income or expense")

	return cmd
}
