package interchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Veraticus/lifeledger/internal/model"
)

const (
	utf8BOM            = "\ufeff"
	unknownAccountName = "未知"
)

var csvHeader = []string{"類型", "項目", "金額", "分類", "日期", "帳戶"}

// CSVFilename is the suggested file name for a CSV export made at now.
func CSVFilename(now time.Time) string {
	return "記帳數據_" + now.UTC().Format(model.DateLayout) + ".csv"
}

// ExportCSV writes one row per transaction, in stored order, prefixed with a
// UTF-8 byte order mark so spreadsheet tools detect the encoding.
func ExportCSV(w io.Writer, transactions []model.Transaction, accounts []model.Account) error {
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, t := range transactions {
		account, ok := names[t.Account]
		if !ok {
			account = unknownAccountName
		}
		row := []string{
			t.Type.Label(),
			t.Name,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
			t.Category,
			t.Date,
			account,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write transaction %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
