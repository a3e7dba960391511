package importer

import (
	"github.com/brewline/cafe-pos/internal/core/domain"
)

// Expense columns: date, type, description, amount, vendor, payment method,
// invoice no, notes.
const (
	expDate = iota
	expType
	expDescription
	expAmount
	expVendor
	expPayment
	expInvoice
	expNotes
)

// ExpenseHeader is the header row of the expense template.
var ExpenseHeader = []string{"Date", "Type", "Description", "Amount", "Vendor", "Payment Method", "Invoice No", "Notes"}

// Expenses maps rows into expenses. Rows missing a required cell are skipped
// silently; rows with an unparseable date or amount are reported.
func Expenses(rows [][]string, recordedBy string) Result[*domain.Expense] {
	var res Result[*domain.Expense]
	dataRows(rows, func(line int, row []string) {
		dateCell, typ, desc, amountCell := cell(row, expDate), cell(row, expType), cell(row, expDescription), cell(row, expAmount)
		if dateCell == "" || typ == "" || desc == "" || amountCell == "" {
			return
		}
		date, ok := parseDate(dateCell)
		if !ok {
			res.fail(line, "invalid date %q", dateCell)
			return
		}
		amount, ok := parseAmount(amountCell)
		if !ok || amount <= 0 {
			res.fail(line, "invalid amount %q", amountCell)
			return
		}
		res.add(&domain.Expense{
			Date:          date,
			Type:          typ,
			Description:   desc,
			Amount:        amount,
			Vendor:        cell(row, expVendor),
			PaymentMethod: cell(row, expPayment),
			InvoiceNo:     cell(row, expInvoice),
			Notes:         cell(row, expNotes),
			RecordedBy:    recordedBy,
		}, amount)
	})
	return res
}
