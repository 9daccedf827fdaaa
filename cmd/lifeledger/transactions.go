package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/lifeledger/internal/cli"
	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/tracker"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Record and review transactions",
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(transferCmd())
	cmd.AddCommand(deleteTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(statsCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var in tracker.TransactionInput
	var txType string

	cmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: "Record an income or expense",
		Long: `Record an income or expense. Recording earns a point and keeps your daily
streak going.

Examples:
  lifeledger tx add 午餐 120 --category 食物
  lifeledger tx add 薪水 42000 --type income --category 薪資 --account acc_1700000000000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			typ, err := parseTransactionType(txType)
			if err != nil {
				return err
			}
			in.Name, in.Amount, in.Type = args[0], amount, typ

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			tx, err := tr.AddTransaction(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to record transaction: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Recorded %s %s %s (%s, id %d)",
				tx.Type.Label(), tx.Name, cli.FormatAmount(decimal.NewFromFloat(tx.Amount)), tx.Category, tx.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", string(model.TypeExpense), "income or expense")
	cmd.Flags().StringVarP(&in.Category, "category", "c", model.SentinelCategory, "category")
	cmd.Flags().StringVarP(&in.Date, "date", "d", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&in.Account, "account", "a", model.DefaultAccountID, "account id")

	return cmd
}

func transferCmd() *cobra.Command {
	var in tracker.TransferInput

	cmd := &cobra.Command{
		Use:   "transfer <from> <to> <amount>",
		Short: "Move money between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			in.From, in.To, in.Amount = args[0], args[1], amount

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			tx, err := tr.AddTransfer(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to record transfer: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Transferred %s from %s to %s (id %d)",
				cli.FormatAmount(decimal.NewFromFloat(tx.Amount)), tx.Account, tx.ToAccount, tx.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Note, "note", "n", "", "note (default 轉帳)")
	cmd.Flags().StringVarP(&in.Date, "date", "d", "", "date as YYYY-MM-DD (default today)")

	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			deleted, err := tr.DeleteTransaction(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			reportChange(cmd.OutOrStdout(), deleted, "Transaction deleted", fmt.Sprintf("No transaction with id %d", id))
			return nil
		},
	}
}

// viewFlags selects the transactions a listing covers.
type viewFlags struct {
	account string
	start   string
	end     string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.account, "account", "a", ledger.HomeView, "account id, or home for all accounts")
	cmd.Flags().StringVar(&f.start, "start", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last date to include (YYYY-MM-DD)")
}

func (f *viewFlags) transactions(tr *tracker.Tracker) ([]model.Transaction, error) {
	if f.account != ledger.HomeView {
		if _, ok := tr.Account(f.account); !ok {
			return nil, fmt.Errorf("unknown account %q", f.account)
		}
	}
	for _, d := range []string{f.start, f.end} {
		if d == "" {
			continue
		}
		if _, err := model.ParseDate(d); err != nil {
			return nil, err
		}
	}
	return ledger.FilterByDate(tr.TransactionsForView(f.account), f.start, f.end), nil
}

func listTxCmd() *cobra.Command {
	var view viewFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			txs, err := view.transactions(tr)
			if err != nil {
				return err
			}
			if len(txs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No transactions found. Use 'lifeledger tx add' to record one."))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Date"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Amount"))
			for _, t := range ledger.SortedByDateDesc(txs) {
				name := t.Name
				if t.IsTransfer() {
					name = fmt.Sprintf("%s → %s %s", t.Account, t.ToAccount, t.Name)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date, t.Type.Label(), name, t.Category,
					cli.FormatAmount(decimal.NewFromFloat(t.Amount)))
			}
			return nil
		},
	}

	view.register(cmd)
	return cmd
}

func statsCmd() *cobra.Command {
	var view viewFlags
	var daily bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize income, expenses and spending by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			txs, err := view.transactions(tr)
			if err != nil {
				return err
			}
			sum := ledger.Summarize(txs, view.account)

			var b strings.Builder
			fmt.Fprintf(&b, "收入 %s\n支出 %s\n", cli.StyleAmount(sum.Income), cli.StyleAmount(sum.Expense.Neg()))
			if view.account != ledger.HomeView {
				fmt.Fprintf(&b, "轉入 %s\n轉出 %s\n", cli.StyleAmount(sum.TransferIn), cli.StyleAmount(sum.TransferOut.Neg()))
			}
			fmt.Fprintf(&b, "結餘 %s", cli.StyleAmount(sum.Balance))
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(cli.ChartIcon+" Summary", b.String()))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			if daily {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					cli.BoldStyle.Render("Date"),
					cli.BoldStyle.Render("Income"),
					cli.BoldStyle.Render("Expense"))
				for _, d := range ledger.DailyTotals(txs) {
					fmt.Fprintf(w, "%s\t%s\t%s\n", d.Date, cli.FormatAmount(d.Income), cli.FormatAmount(d.Expense))
				}
				return nil
			}

			byCategory := ledger.ExpenseByCategory(txs)
			if len(byCategory) == 0 {
				return nil
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Spent"),
				cli.BoldStyle.Render("Share"))
			for _, c := range byCategory {
				share := decimal.Zero
				if sum.Expense.IsPositive() {
					share = c.Total.Div(sum.Expense).Mul(decimal.NewFromInt(100))
				}
				fmt.Fprintf(w, "%s\t%s\t%s%%\n", c.Category, cli.FormatAmount(c.Total), share.StringFixed(1))
			}
			return nil
		},
	}

	view.register(cmd)
	cmd.Flags().BoolVar(&daily, "daily", false, "show income and expense per day instead of by category")
	return cmd
}
