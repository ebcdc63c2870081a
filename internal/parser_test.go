package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestIsKnownParser(t *testing.T) {
	// Register a test parser
	RegisterParser("test-format", ParserFunc(func(path string) ([]Transaction, error) {
		return nil, nil
	}))

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"known parser", "test-format", true},
		{"built-in xlsx parser", "xlsx", true},
		{"built-in json parser", "simple-json", true},
		{"unknown parser", "unknown-format", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsKnownParser(tt.input)
			if got != tt.expected {
				t.Errorf("IsKnownParser(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFileArg(t *testing.T) {
	// Register a test parser for these tests
	RegisterParser("test-format", ParserFunc(func(path string) ([]Transaction, error) {
		return nil, nil
	}))

	tests := []struct {
		name           string
		input          string
		expectedFormat string
		expectedPath   string
	}{
		{
			name:           "with known format prefix",
			input:          "test-format:data.json",
			expectedFormat: "test-format",
			expectedPath:   "data.json",
		},
		{
			name:           "with built-in format prefix",
			input:          "xlsx:bank.xlsx",
			expectedFormat: "xlsx",
			expectedPath:   "bank.xlsx",
		},
		{
			name:           "no prefix",
			input:          "data.json",
			expectedFormat: "",
			expectedPath:   "data.json",
		},
		{
			name:           "unknown prefix treated as path",
			input:          "unknown:data.json",
			expectedFormat: "",
			expectedPath:   "unknown:data.json",
		},
		{
			name:           "windows path with drive letter",
			input:          "C:\\Users\\test\\data.xlsx",
			expectedFormat: "",
			expectedPath:   "C:\\Users\\test\\data.xlsx",
		},
		{
			name:           "format prefix with absolute path",
			input:          "test-format:/home/user/data.json",
			expectedFormat: "test-format",
			expectedPath:   "/home/user/data.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotFormat, gotPath := ParseFileArg(tt.input)
			if gotFormat != tt.expectedFormat {
				t.Errorf("ParseFileArg(%q) format = %q, want %q", tt.input, gotFormat, tt.expectedFormat)
			}
			if gotPath != tt.expectedPath {
				t.Errorf("ParseFileArg(%q) path = %q, want %q", tt.input, gotPath, tt.expectedPath)
			}
		})
	}
}

func TestParserForFile(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		arg      string
		wantPath string
		wantErr  bool
	}{
		{"json extension", "", "data.json", "data.json", false},
		{"xlsx extension", "", "Bank.XLSX", "Bank.XLSX", false},
		{"prefix wins over extension", "", "simple-json:data.xlsx", "data.xlsx", false},
		{"explicit format", "xlsx", "export.bin", "export.bin", false},
		{"unknown extension", "", "data.csv", "data.csv", true},
		{"unknown explicit format", "csv", "data.csv", "data.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, path, err := ParserForFile(tt.format, tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParserForFile(%q, %q) error = %v, wantErr %v", tt.format, tt.arg, err, tt.wantErr)
			}
			if path != tt.wantPath {
				t.Errorf("path = %q, want %q", path, tt.wantPath)
			}
			if !tt.wantErr && p == nil {
				t.Error("expected a parser")
			}
		})
	}
}

func TestParseSimpleJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	data := `{"transactions": [
		{"date": "2025-01-15", "text": "Netflix", "amount": -649.00},
		{"date": "2025-02-15", "text": "Netflix", "amount": -649.00}
	]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	txs, err := ParseSimpleJSON(path)
	if err != nil {
		t.Fatalf("ParseSimpleJSON() error = %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[1].Date != MustDate("2025-02-15") || txs[1].Text != "Netflix" || txs[1].Amount != -649 {
		t.Errorf("unexpected transaction: %+v", txs[1])
	}
}

func TestParseSimpleJSON_Payee(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	data := `{"transactions": [
		{"date": "2025-01-15", "payee": " Spotify ", "amount": -119},
		{"date": "2025-01-16", "amount": -5}
	]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ParseSimpleJSON(path)
	if err == nil || !strings.Contains(err.Error(), "transaction 2: missing text") {
		t.Errorf("expected missing text error, got %v", err)
	}

	data = `{"transactions": [{"date": "2025-01-15", "payee": " Spotify ", "amount": -119}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	txs, err := ParseSimpleJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if txs[0].Text != "Spotify" {
		t.Errorf("Text = %q, want Spotify", txs[0].Text)
	}
}

func TestParseSimpleJSON_BadDate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	data := `{"transactions": [{"date": "15/01/2025", "text": "Netflix", "amount": -649.00}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ParseSimpleJSON(path)
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func writeTransactionsXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "bank.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseTransactionsXLSX(t *testing.T) {
	path := writeTransactionsXLSX(t, [][]interface{}{
		{"Account statement"},
		{"Account", "1234-5678"},
		{},
		{"Value Date", "Narration", "Amount", "Balance"},
		{"2025-01-05", "Netflix", "-199.00", "10000"},
		{"2025-02-05", "Prel Netflix", "-199,00", "9801"},
		{"2025-02-10", "Salary", "85,000.00", "94801"},
		{"", "", "", ""},
	})

	txs, err := ParseTransactionsXLSX(path)
	if err != nil {
		t.Fatalf("ParseTransactionsXLSX() error = %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d: %+v", len(txs), txs)
	}

	want := []Transaction{
		{Date: MustDate("2025-01-05"), Text: "Netflix", Amount: -199},
		{Date: MustDate("2025-02-05"), Text: "Netflix", Amount: -199},
		{Date: MustDate("2025-02-10"), Text: "Salary", Amount: 85000},
	}
	for i := range want {
		if txs[i] != want[i] {
			t.Errorf("transaction %d = %+v, want %+v", i, txs[i], want[i])
		}
	}
}

func TestParseTransactionsXLSX_MissingColumns(t *testing.T) {
	path := writeTransactionsXLSX(t, [][]interface{}{
		{"Date", "Text"},
		{"2025-01-05", "Netflix"},
	})

	if _, err := ParseTransactionsXLSX(path); err == nil {
		t.Error("expected error for missing Amount column")
	}
}
