package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/lifeledger/internal/cli"
	"github.com/Veraticus/lifeledger/internal/interchange"
	"github.com/Veraticus/lifeledger/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import data from a backup or a bank statement",
	}

	cmd.AddCommand(importJSONCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importJSONCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "json <file>",
		Short: "Restore a JSON backup",
		Long: `Restore a JSON backup made with 'lifeledger export json'.

Transactions and todos are replaced. Accounts are replaced only when the
backup contains them. The undo history is cleared and cannot be recovered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			// Parse before asking so a bad file never prompts.
			payload, err := interchange.ParseImport(f)
			if err != nil {
				return err
			}

			if !yes {
				confirmer := cli.NewConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := confirmer.Confirm(cmd.Context(), fmt.Sprintf(
					"Replace the ledger with %d transactions and %d todos from %s?",
					len(payload.Transactions), len(payload.Todos), filepath.Base(args[0])))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Import cancelled"))
					return nil
				}
			}

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := tr.Import(cmd.Context(), payload); err != nil {
				return fmt.Errorf("failed to import: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d transactions and %d todos",
				len(payload.Transactions), len(payload.Todos))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace without asking")

	return cmd
}

func importOFXCmd() *cobra.Command {
	var account string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ofx <files...>",
		Short: "Import transactions from OFX/QFX bank statements",
		Long: `Import transactions from OFX or QFX files exported from your bank.
Debits become expenses and credits become income, filed under 其他.

Examples:
  # Import one statement into a bank account
  lifeledger import ofx ~/Downloads/chase_jan_2024.qfx --account acc_1700000000000

  # Preview without saving
  lifeledger import ofx ~/Downloads/*.qfx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			var drafts []model.Transaction
			for _, path := range files {
				parsed, err := parseStatementFile(cmd, path)
				if err != nil {
					return err
				}
				drafts = append(drafts, parsed...)
			}
			if len(drafts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No transactions found in any file"))
				return nil
			}

			if dryRun {
				for _, d := range drafts {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-30s %s\n", d.Date, d.Type.Label(), d.Name,
						cli.FormatAmount(decimal.NewFromFloat(d.Amount)))
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported", len(drafts))))
				return nil
			}

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			bar := newImportProgressBar(cmd, len(drafts))
			imported, err := tr.ImportStatement(cmd.Context(), drafts, account, func() {
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			})
			if err != nil {
				return fmt.Errorf("failed to import statement: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d transactions", len(imported))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", model.DefaultAccountID, "account id to record into")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")

	return cmd
}

// expandFiles expands glob patterns, keeping literal paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

func parseStatementFile(cmd *cobra.Command, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	drafts, err := interchange.ParseOFX(cmd.Context(), f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	slog.Info("Processed file", "file", filepath.Base(path), "transactions_found", len(drafts))
	return drafts, nil
}

func newImportProgressBar(cmd *cobra.Command, total int) *progressbar.ProgressBar {
	w := cmd.ErrOrStderr()
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
