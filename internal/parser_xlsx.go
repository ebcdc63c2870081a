package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Header names recognized by ParseTransactionsXLSX, lowercase.
var (
	xlsxDateHeaders   = []string{"date", "transaction date", "value date", "reskontradatum"}
	xlsxTextHeaders   = []string{"text", "description", "narration", "payee"}
	xlsxAmountHeaders = []string{"amount", "belopp"}
)

// ParseTransactionsXLSX reads transactions from the first sheet of a bank
// export. The header row is found by scanning for date, text and amount
// columns; rows above it (bank letterheads, account info) are skipped.
func ParseTransactionsXLSX(path string) ([]Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	dateCol, textCol, amountCol := -1, -1, -1
	dataStartRow := -1
	for i, row := range rows {
		dateCol, textCol, amountCol = -1, -1, -1
		for j, cell := range row {
			cell = strings.ToLower(strings.TrimSpace(cell))
			switch {
			case dateCol < 0 && contains(xlsxDateHeaders, cell):
				dateCol = j
			case textCol < 0 && contains(xlsxTextHeaders, cell):
				textCol = j
			case amountCol < 0 && contains(xlsxAmountHeaders, cell):
				amountCol = j
			}
		}
		if dateCol >= 0 && textCol >= 0 && amountCol >= 0 {
			dataStartRow = i + 1
			break
		}
	}
	if dataStartRow < 0 {
		return nil, fmt.Errorf("could not find required columns (Date, Text, Amount)")
	}

	var transactions []Transaction
	maxCol := max(dateCol, textCol, amountCol)
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]
		if len(row) <= maxCol {
			continue
		}

		dateStr := strings.TrimSpace(row[dateCol])
		text := strings.TrimSpace(row[textCol])
		amountStr := strings.TrimSpace(row[amountCol])

		// Skip empty rows
		if dateStr == "" || text == "" || amountStr == "" {
			continue
		}

		date, err := ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		amountStr = strings.ReplaceAll(amountStr, " ", "")
		if strings.Contains(amountStr, ".") {
			amountStr = strings.ReplaceAll(amountStr, ",", "") // 1,234.50
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", ".") // 1234,50
		}
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q", i+1, row[amountCol])
		}

		// Strip "Prel " prefix from pending transactions
		text = strings.TrimPrefix(text, "Prel ")

		transactions = append(transactions, Transaction{
			Date:   date,
			Text:   text,
			Amount: amount,
		})
	}

	return transactions, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
