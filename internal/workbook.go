package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookSheet is the sheet name used by ExportWorkbook and ImportWorkbook.
const WorkbookSheet = "Subscriptions"

var workbookHeader = []string{
	"Name", "Category", "Cycle", "Cost", "Monthly Cost",
	"Start Date", "Next Renewal", "Days Until", "Payment Method", "Active",
}

// ExportWorkbook writes subs to an xlsx file at path, one row per
// subscription, with renewal columns computed by cal.
func ExportWorkbook(path string, subs []Subscription, cal *Calendar) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WorkbookSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := f.SetSheetRow(WorkbookSheet, "A1", &workbookHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, sub := range subs {
		next := sub.NextRenewal()
		days := next.DaysSince(cal.Today())
		row := []interface{}{
			sub.Name,
			string(sub.Category),
			sub.Cycle.String(),
			sub.Cost,
			sub.MonthlyCost(),
			sub.StartDate.String(),
			next.String(),
			days,
			sub.PaymentMethod,
			sub.Active,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(WorkbookSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// ImportWorkbook reads subscriptions from the first sheet of an xlsx file.
// Columns are located by header name, so derived columns (Monthly Cost, Next
// Renewal, Days Until) and extra columns are ignored. Missing Category
// defaults to Other; missing Active defaults to true.
func ImportWorkbook(path string) ([]*Subscription, error) {
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
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	cols := make(map[string]int)
	for j, cell := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(cell))] = j
	}
	for _, required := range []string{"name", "cycle", "cost", "start date"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	get := func(row []string, name string) string {
		j, ok := cols[name]
		if !ok || j >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[j])
	}

	var subs []*Subscription
	for i, row := range rows[1:] {
		rowNum := i + 2
		name := get(row, "name")
		if name == "" {
			continue
		}

		cycle, err := ParseBillingCycle(get(row, "cycle"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		cost, err := strconv.ParseFloat(strings.ReplaceAll(get(row, "cost"), ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid cost %q", rowNum, get(row, "cost"))
		}
		start, err := ParseDate(get(row, "start date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		category := CategoryOther
		if c := get(row, "category"); c != "" {
			if category, err = ParseCategory(c); err != nil {
				return nil, fmt.Errorf("row %d: %w", rowNum, err)
			}
		}

		sub := NewSubscription(name, cost, cycle, start, category)
		sub.PaymentMethod = get(row, "payment method")
		if active := get(row, "active"); active != "" {
			if sub.Active, err = strconv.ParseBool(strings.ToLower(active)); err != nil {
				return nil, fmt.Errorf("row %d: invalid active flag %q", rowNum, active)
			}
		}
		if err := sub.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
