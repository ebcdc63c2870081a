package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// jsonStatement is the simple-json transaction export:
//
//	{
//	  "transactions": [
//	    {"date": "2025-01-15", "text": "Netflix", "amount": -649.00},
//	    {"date": "2025-02-15", "payee": "Netflix", "amount": -649.00}
//	  ]
//	}
//
// Negative amounts are expenses. "payee" is accepted in place of "text".
type jsonStatement struct {
	Transactions []jsonTransaction `json:"transactions"`
}

type jsonTransaction struct {
	Date   string  `json:"date"`
	Text   string  `json:"text"`
	Payee  string  `json:"payee"`
	Amount float64 `json:"amount"`
}

// ParseSimpleJSON reads a simple-json statement. Entries without a payee are
// rejected since detection groups by payee.
func ParseSimpleJSON(path string) ([]Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var statement jsonStatement
	if err := json.Unmarshal(data, &statement); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	txs := make([]Transaction, 0, len(statement.Transactions))
	for i, entry := range statement.Transactions {
		date, err := ParseDate(entry.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			text = strings.TrimSpace(entry.Payee)
		}
		if text == "" {
			return nil, fmt.Errorf("transaction %d: missing text", i+1)
		}
		txs = append(txs, Transaction{Date: date, Text: text, Amount: entry.Amount})
	}
	return txs, nil
}

func init() {
	RegisterParser("simple-json", ParserFunc(ParseSimpleJSON), ".json")
}
