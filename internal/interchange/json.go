// Package interchange reads and writes whole-ledger snapshots: the JSON
// backup format, a CSV listing of transactions, and OFX/QFX bank statements.
package interchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/lifeledger/internal/common"
	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
)

// Backup is the JSON document produced by ExportJSON.
type Backup struct {
	ExportDate   string              `json:"exportDate"`
	Transactions []model.Transaction `json:"transactions"`
	Todos        []model.Todo        `json:"todos"`
	Accounts     []model.Account     `json:"accounts"`
}

// Payload is a validated import. Accounts is empty when the document did not
// provide any, in which case existing accounts must be kept.
type Payload struct {
	Transactions []model.Transaction
	Todos        []model.Todo
	Accounts     []model.Account
}

// BackupFilename is the suggested file name for a JSON export made at now.
func BackupFilename(now time.Time) string {
	return "生活助手數據_" + now.UTC().Format(model.DateLayout) + ".json"
}

// ExportJSON writes the snapshot's transactions, todos and accounts as an
// indented JSON document stamped with now.
func ExportJSON(w io.Writer, snap ledger.Snapshot, now time.Time) error {
	doc := Backup{
		Transactions: nonNil(snap.Transactions),
		Todos:        nonNil(snap.Todos),
		Accounts:     nonNil(snap.Accounts),
		ExportDate:   now.UTC().Format("2006-01-02T15:04:05.000Z"),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// ParseImport decodes and validates a backup document. Any decoding error or
// invalid entity rejects the whole payload with common.ErrImportFormat.
func ParseImport(r io.Reader) (Payload, error) {
	var doc Backup
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", common.ErrImportFormat, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Payload{}, fmt.Errorf("%w: trailing data after document", common.ErrImportFormat)
	}

	for i, t := range doc.Transactions {
		if err := ledger.ValidateTransactionShape(t); err != nil {
			return Payload{}, fmt.Errorf("%w: transaction %d: %v", common.ErrImportFormat, i, err)
		}
	}
	for i, t := range doc.Todos {
		if err := ledger.ValidateTodo(t); err != nil {
			return Payload{}, fmt.Errorf("%w: todo %d: %v", common.ErrImportFormat, i, err)
		}
	}
	for i, a := range doc.Accounts {
		if err := ledger.ValidateAccount(a); err != nil {
			return Payload{}, fmt.Errorf("%w: account %d: %v", common.ErrImportFormat, i, err)
		}
	}
	if err := checkUniqueIDs(doc); err != nil {
		return Payload{}, err
	}

	return Payload{
		Transactions: nonNil(doc.Transactions),
		Todos:        nonNil(doc.Todos),
		Accounts:     doc.Accounts,
	}, nil
}

func checkUniqueIDs(doc Backup) error {
	txIDs := make(map[int64]bool, len(doc.Transactions))
	for _, t := range doc.Transactions {
		if txIDs[t.ID] {
			return fmt.Errorf("%w: duplicate transaction id %d", common.ErrImportFormat, t.ID)
		}
		txIDs[t.ID] = true
	}
	todoIDs := make(map[int64]bool, len(doc.Todos))
	for _, t := range doc.Todos {
		if todoIDs[t.ID] {
			return fmt.Errorf("%w: duplicate todo id %d", common.ErrImportFormat, t.ID)
		}
		todoIDs[t.ID] = true
	}
	accountIDs := make(map[string]bool, len(doc.Accounts))
	for _, a := range doc.Accounts {
		if accountIDs[a.ID] {
			return fmt.Errorf("%w: duplicate account id %q", common.ErrImportFormat, a.ID)
		}
		accountIDs[a.ID] = true
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
