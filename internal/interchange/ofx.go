package interchange

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/lifeledger/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tag at end of line with no closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// StatementParser turns OFX/QFX statements into transaction drafts.
type StatementParser struct{}

// NewStatementParser creates a new OFX parser.
func NewStatementParser() *StatementParser {
	return &StatementParser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *StatementParser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be INFO, WARN or ERROR
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseOFX is a convenience wrapper around StatementParser.Parse.
func ParseOFX(ctx context.Context, r io.Reader) ([]model.Transaction, error) {
	return NewStatementParser().Parse(ctx, r)
}

// Parse reads bank and credit card statements. Debits become expenses and
// credits become income, both under the sentinel category. Drafts carry no
// id and no account; the caller assigns both when recording them.
func (p *StatementParser) Parse(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var drafts []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			drafts = append(drafts, p.convertList(ctx, stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			drafts = append(drafts, p.convertList(ctx, stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(drafts),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return drafts, nil
}

func (p *StatementParser) convertList(ctx context.Context, list *ofxgo.TransactionList, accountID string) []model.Transaction {
	if list == nil {
		return nil
	}

	drafts := make([]model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		draft, ok := p.convertTransaction(ofxTx)
		if !ok {
			slog.DebugContext(ctx, "Skipping zero-amount statement line",
				"account", accountID,
				"fitid", string(ofxTx.FiTID))
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts
}

// convertTransaction converts an OFX transaction into a draft. Zero amounts
// cannot be recorded and are reported as not ok.
func (p *StatementParser) convertTransaction(ofxTx ofxgo.Transaction) (model.Transaction, bool) {
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount == 0 {
		return model.Transaction{}, false
	}

	draft := model.Transaction{
		Name:     p.extractMerchantName(ofxTx),
		Type:     model.TypeIncome,
		Category: model.SentinelCategory,
		Date:     model.FormatDate(ofxTx.DtPosted.Time),
		Amount:   amount,
	}
	if amount < 0 {
		draft.Type = model.TypeExpense
		draft.Amount = -amount
	}
	if draft.Name == "" {
		draft.Name = fmt.Sprintf("%v", ofxTx.TrnType)
	}
	return draft, true
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *StatementParser) extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is usually cleaner than NAME
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD "
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
