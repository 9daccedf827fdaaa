package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/lifeledger/internal/common"
	"github.com/Veraticus/lifeledger/internal/model"
)

// cliEnv runs commands against one database, the way separate invocations
// of the binary would.
type cliEnv struct {
	t  *testing.T
	db string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return &cliEnv{t: t, db: filepath.Join(dir, "ledger.db")}
}

func (e *cliEnv) runWithInput(stdin string, args ...string) (string, error) {
	e.t.Helper()
	viper.Reset()
	cfgFile = ""

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--db", e.db, "--log-level", "error"}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runWithInput("", args...)
	require.NoError(e.t, err, out)
	return out
}

func findCmd(parent *cobra.Command, name string) *cobra.Command {
	for _, c := range parent.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func TestRootCmd_Structure(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"accounts", "tx", "todo", "categories", "undo", "redo",
		"history", "streak", "export", "import", "dashboard", "version"} {
		assert.NotNil(t, findCmd(root, name), "%s command should exist", name)
	}

	tx := findCmd(root, "tx")
	for _, name := range []string{"add", "transfer", "delete", "list", "stats"} {
		assert.NotNil(t, findCmd(tx, name), "tx %s should exist", name)
	}

	add := findCmd(tx, "add")
	flag := add.Flag("type")
	require.NotNil(t, flag)
	assert.Equal(t, "expense", flag.DefValue)
	assert.Equal(t, model.DefaultAccountID, add.Flag("account").DefValue)

	importJSON := findCmd(findCmd(root, "import"), "json")
	require.NotNil(t, importJSON)
	assert.NotNil(t, importJSON.Flag("yes"))
}

func TestParseHelpers(t *testing.T) {
	amount, err := parseAmount(" 12.5 ")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, amount, 1e-9)

	_, err = parseAmount("twelve")
	assert.ErrorIs(t, err, common.ErrValidation)

	id, err := parseID("1700000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), id)

	_, err = parseID("abc")
	assert.ErrorIs(t, err, common.ErrValidation)

	typ, err := parseTransactionType("Income")
	require.NoError(t, err)
	assert.Equal(t, model.TypeIncome, typ)

	_, err = parseTransactionType("transfer")
	assert.ErrorIs(t, err, common.ErrValidation)
}

var accountIDPattern = regexp.MustCompile(`\((acc_\d+)\)`)

func TestCLI_TransactionFlow(t *testing.T) {
	env := newCLIEnv(t)

	out := env.run("accounts", "add", "銀行", "--type", "bank")
	match := accountIDPattern.FindStringSubmatch(out)
	require.Len(t, match, 2, out)
	bank := match[1]

	out = env.run("tx", "add", "午餐", "120", "--category", "食物", "--date", "2024-03-01")
	assert.Contains(t, out, "午餐")
	assert.Contains(t, out, "$120")

	env.run("tx", "add", "薪水", "3000", "--type", "income", "--category", "薪資", "--date", "2024-03-02")
	env.run("tx", "transfer", model.DefaultAccountID, bank, "500", "--date", "2024-03-03")

	out = env.run("accounts", "list")
	assert.Contains(t, out, "$2380")
	assert.Contains(t, out, "$500")

	out = env.run("tx", "list", "--account", bank)
	assert.Contains(t, out, "轉帳")
	assert.NotContains(t, out, "午餐")

	out = env.run("tx", "stats")
	assert.Contains(t, out, "$3000")
	assert.Contains(t, out, "$-120")
	assert.Contains(t, out, "食物")

	out = env.run("tx", "stats", "--daily")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "$120")
	assert.NotContains(t, out, "Share")

	out = env.run("tx", "list", "--start", "2024-03-02", "--end", "2024-03-02")
	assert.Contains(t, out, "薪水")
	assert.NotContains(t, out, "午餐")

	// Undo survives between invocations.
	out = env.run("undo")
	assert.Contains(t, out, "Undid add transaction: 轉帳")
	out = env.run("history")
	assert.Contains(t, out, "(undone)")

	out = env.run("redo")
	assert.Contains(t, out, "Redid add transaction: 轉帳")
	out = env.run("accounts", "list")
	assert.Contains(t, out, "$2380")

	out = env.run("streak")
	assert.Contains(t, out, "3 points")
}

func TestCLI_Validation(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.runWithInput("", "tx", "add", "午餐", "abc")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.runWithInput("", "tx", "add", "午餐", "0")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.runWithInput("", "tx", "add", "午餐", "5", "--account", "nope")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.runWithInput("", "accounts", "delete", model.DefaultAccountID)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.runWithInput("", "accounts", "add", "x", "--type", "gold")
	assert.Error(t, err)

	_, err = env.runWithInput("", "tx", "list", "--start", "March")
	assert.Error(t, err)

	out := env.run("tx", "delete", "42")
	assert.Contains(t, out, "No transaction with id 42")

	out = env.run("undo")
	assert.Contains(t, out, "Nothing to undo")
}

var todoIDPattern = regexp.MustCompile(`Added todo (\d+)`)

func TestCLI_Todos(t *testing.T) {
	env := newCLIEnv(t)

	out := env.run("todo", "add", "繳", "電費", "--priority", "high", "--due", "2000-01-01")
	match := todoIDPattern.FindStringSubmatch(out)
	require.Len(t, match, 2, out)
	id := match[1]

	out = env.run("todo", "list", "--sort", "priority")
	assert.Contains(t, out, "繳 電費")
	assert.Contains(t, out, "overdue")

	out = env.run("todo", "toggle", id)
	assert.Contains(t, out, "Todo updated")

	out = env.run("todo", "list", "--pending")
	assert.Contains(t, out, "Nothing to do")

	out = env.run("todo", "delete", id)
	assert.Contains(t, out, "Todo deleted")
	out = env.run("todo", "delete", id)
	assert.Contains(t, out, "No todo with id "+id)

	_, err := env.runWithInput("", "todo", "list", "--sort", "alphabetical")
	assert.Error(t, err)
}

func TestCLI_Categories(t *testing.T) {
	env := newCLIEnv(t)

	env.run("categories", "add", "旅遊")
	env.run("tx", "add", "機票", "9000", "--category", "旅遊")

	out := env.run("categories", "list")
	assert.Contains(t, out, "旅遊 (custom)")

	_, err := env.runWithInput("", "categories", "add", "食物")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.runWithInput("", "categories", "add", "x", "--type", "transfer")
	assert.Error(t, err)

	out = env.run("categories", "remove", "旅遊")
	assert.Contains(t, out, "其他")

	out = env.run("tx", "list")
	assert.Contains(t, out, "其他")
	assert.NotContains(t, out, "旅遊")
}

func TestCLI_ExportImport(t *testing.T) {
	env := newCLIEnv(t)
	dir := t.TempDir()
	backup := filepath.Join(dir, "backup.json")

	env.run("tx", "add", "午餐", "120", "--category", "食物")
	out := env.run("export", "json", backup)
	assert.Contains(t, out, "Exported to "+backup)

	out = env.run("export", "csv", "-")
	assert.Contains(t, out, "類型,項目,金額,分類,日期,帳戶")
	assert.Contains(t, out, "支出,午餐,120,食物")

	env.run("tx", "add", "晚餐", "200", "--category", "食物")

	out, err := env.runWithInput("n\n", "import", "json", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Import cancelled")
	assert.Contains(t, env.run("tx", "list"), "晚餐")

	out, err = env.runWithInput("y\n", "import", "json", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 transactions and 0 todos")

	out = env.run("tx", "list")
	assert.Contains(t, out, "午餐")
	assert.NotContains(t, out, "晚餐")
	assert.Contains(t, env.run("history"), "No history yet")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"transactions": "nope"}`), 0o600))
	_, err = env.runWithInput("", "import", "json", "--yes", bad)
	assert.ErrorIs(t, err, common.ErrImportFormat)
}

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>POS PURCHASE STARBUCKS
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>1500.00
<FITID>2024012001
<NAME>ACME PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestCLI_ImportOFX(t *testing.T) {
	env := newCLIEnv(t)
	file := filepath.Join(t.TempDir(), "jan.qfx")
	require.NoError(t, os.WriteFile(file, []byte(statementOFX), 0o600))

	out := env.run("import", "ofx", "--dry-run", file)
	assert.Contains(t, out, "STARBUCKS")
	assert.Contains(t, out, "Dry run: 2 transactions")
	assert.Contains(t, env.run("tx", "list"), "No transactions found")

	out = env.run("import", "ofx", file)
	assert.Contains(t, out, "Imported 2 transactions")

	out = env.run("tx", "list")
	assert.Contains(t, out, "2024-01-15")
	assert.Contains(t, out, "ACME PAYROLL")

	_, err := env.runWithInput("", "import", "ofx", filepath.Join(t.TempDir(), "missing*.qfx"))
	assert.Error(t, err)
}

func TestCLI_MemoryBackend(t *testing.T) {
	env := newCLIEnv(t)

	env.run("--backend", "memory", "tx", "add", "午餐", "120")
	out := env.run("--backend", "memory", "tx", "list")
	assert.Contains(t, out, "No transactions found", "memory backend keeps nothing between runs")

	_, err := env.runWithInput("", "--backend", "floppy", "tx", "list")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestCLI_Version(t *testing.T) {
	env := newCLIEnv(t)
	assert.Contains(t, env.run("version"), "lifeledger dev")
}
