package importer

import (
	"github.com/brewline/cafe-pos/internal/core/domain"
)

// Sales columns: date, invoice no, item, quantity, unit price, payment method,
// notes. The date, invoice, payment and notes cells belong to the row that
// opens a sale; rows below it with an empty date add further items.
const (
	saleDate = iota
	saleInvoice
	saleItem
	saleQuantity
	salePrice
	salePayment
	saleNotes
)

// Sales groups rows into sales. A non-empty parseable date starts a new sale
// and flushes the previous one. A non-empty unparseable date is reported and
// also closes the current sale, so the item rows beneath it are not merged
// into an unrelated date.
func Sales(rows [][]string, recordedBy string) Result[*domain.Sale] {
	var (
		res Result[*domain.Sale]
		cur *domain.Sale
	)
	flush := func() {
		if cur != nil && len(cur.Items) > 0 {
			cur.Recalculate()
			res.add(cur, cur.Total)
		}
		cur = nil
	}

	dataRows(rows, func(line int, row []string) {
		if dateCell := cell(row, saleDate); dateCell != "" {
			date, ok := parseDate(dateCell)
			flush()
			if !ok {
				res.fail(line, "invalid date %q", dateCell)
				return
			}
			cur = &domain.Sale{
				Date:          date,
				InvoiceNo:     cell(row, saleInvoice),
				PaymentMethod: cell(row, salePayment),
				Notes:         cell(row, saleNotes),
				RecordedBy:    recordedBy,
			}
		}

		name := cell(row, saleItem)
		if name == "" {
			return
		}
		if cur == nil {
			res.fail(line, "item %q has no sale date above it", name)
			return
		}
		item, reason := saleItemFrom(row, name)
		if reason != "" {
			res.fail(line, "%s", reason)
			return
		}
		cur.Items = append(cur.Items, item)
	})
	flush()
	return res
}

func saleItemFrom(row []string, name string) (domain.SaleItem, string) {
	priceCell := cell(row, salePrice)
	price, ok := parseAmount(priceCell)
	if !ok || price < 0 {
		return domain.SaleItem{}, "invalid unit price " + quote(priceCell)
	}
	qty := 1.0
	if qtyCell := cell(row, saleQuantity); qtyCell != "" {
		q, ok := parseAmount(qtyCell)
		if !ok || q <= 0 {
			return domain.SaleItem{}, "invalid quantity " + quote(qtyCell)
		}
		qty = q
	}
	return domain.SaleItem{Name: name, Quantity: qty, UnitPrice: price}, ""
}

func quote(s string) string { return `"` + s + `"` }
