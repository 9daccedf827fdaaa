package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/lifeledger/internal/cli"
	"github.com/Veraticus/lifeledger/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage accounts",
		Long:    `List, add and delete the accounts money is recorded against.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with their balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Balance"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 16),
				strings.Repeat("-", 12),
				strings.Repeat("-", 8),
				strings.Repeat("-", 10))

			for _, b := range tr.Balances() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					b.Account.ID, b.Account.Name, b.Account.Type.Label(), cli.StyleAmount(b.Balance))
			}
			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var accountType string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := model.AccountType(strings.ToLower(accountType))
			if !typ.Valid() {
				return fmt.Errorf("unknown account type %q (cash, bank, credit)", accountType)
			}

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			account, err := tr.AddAccount(cmd.Context(), args[0], typ)
			if err != nil {
				return fmt.Errorf("failed to add account: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s account %q (%s)", account.Type.Label(), account.Name, account.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&accountType, "type", "t", string(model.AccountCash), "account type (cash, bank, credit)")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Long: `Delete an account. Its transactions are kept and still count toward the
home view; undo restores the account.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			deleted, err := tr.DeleteAccount(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}

			reportChange(cmd.OutOrStdout(), deleted, "Account deleted", fmt.Sprintf("No account with id %s", args[0]))
			return nil
		},
	}
}
