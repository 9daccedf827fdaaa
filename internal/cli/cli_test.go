package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/lifeledger/internal/model"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		in   decimal.Decimal
		want string
	}{
		{name: "zero", in: decimal.Zero, want: "$0"},
		{name: "positive rounds", in: decimal.NewFromFloat(1474.5), want: "$1475"},
		{name: "negative", in: decimal.NewFromInt(-50), want: "$-50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.in))
			assert.Contains(t, StyleAmount(tt.in), tt.want)
		})
	}
}

func TestFormatTodo(t *testing.T) {
	due := "2024-03-01"
	todo := model.Todo{Text: "pay rent", Priority: model.PriorityHigh, DueDate: &due}

	assert.Contains(t, FormatTodo(todo, "2024-02-28"), "🔴 pay rent 📅 2024-03-01")
	assert.NotContains(t, FormatTodo(todo, "2024-02-28"), "overdue")
	assert.Contains(t, FormatTodo(todo, "2024-03-02"), "(overdue)")

	todo.Done = true
	assert.NotContains(t, FormatTodo(todo, "2024-03-02"), "overdue")
	assert.Contains(t, FormatTodo(todo, "2024-03-02"), CheckIcon)
	assert.Equal(t, "🟢", PriorityIcon(model.PriorityLow))
}

func TestLineReader_ReadLine(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
		expectError   bool
	}{
		{name: "successful read", input: "test input\n", expectedValue: "test input"},
		{name: "read with extra whitespace", input: "  test input  \n", expectedValue: "test input"},
		{name: "empty line", input: "\n", expectedValue: ""},
		{name: "last line without newline", input: "yes", expectedValue: "yes"},
		{name: "no input", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewLineReader(strings.NewReader(tt.input)).ReadLine(context.Background())
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValue, result)
		})
	}
}

func TestLineReader_ContextCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewLineReader(pr).ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full yes", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty is no", input: "\n", want: false},
		{name: "retries until valid", input: "maybe\ny\n", want: true},
		{name: "input ends", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := NewConfirmer(strings.NewReader(tt.input), &out).Confirm(context.Background(), "Overwrite?")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Overwrite? [y/N]")
		})
	}
}
