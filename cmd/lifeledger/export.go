package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/lifeledger/internal/cli"
	"github.com/Veraticus/lifeledger/internal/interchange"
	"github.com/Veraticus/lifeledger/internal/tracker"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger to a file",
	}

	cmd.AddCommand(exportFormatCmd("json", "Write a JSON backup of transactions, todos and accounts",
		interchange.BackupFilename, (*tracker.Tracker).Export))
	cmd.AddCommand(exportFormatCmd("csv", "Write transactions as a spreadsheet-friendly CSV",
		interchange.CSVFilename, (*tracker.Tracker).ExportCSV))

	return cmd
}

func exportFormatCmd(
	format, short string,
	defaultName func(time.Time) string,
	write func(*tracker.Tracker, io.Writer) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   format + " [file]",
		Short: short,
		Long: short + `.

The file defaults to a dated name in the current directory. Use - to write
to standard output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			path := defaultName(tr.Now())
			if len(args) == 1 {
				path = args[0]
			}

			return writeExport(cmd.OutOrStdout(), path, func(w io.Writer) error {
				return write(tr, w)
			})
		},
	}
}

// writeExport writes through write to path, or to out when path is "-".
func writeExport(out io.Writer, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(out)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	_, _ = fmt.Fprintln(out, cli.FormatSuccess("Exported to "+path))
	return nil
}
