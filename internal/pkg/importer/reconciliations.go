package importer

import (
	"github.com/brewline/cafe-pos/internal/core/domain"
)

// Cash reconciliation columns: date, opening cash, cash sales, counted cash,
// coins, online income, notes.
const (
	recDate = iota
	recOpening
	recCashSales
	recCounted
	recCoins
	recOnline
	recNotes
)

// Reconciliations keeps every row with a valid date; numeric cells that are
// empty or unparseable count as zero.
func Reconciliations(rows [][]string, recordedBy string) Result[*domain.CashReconciliation] {
	var res Result[*domain.CashReconciliation]
	dataRows(rows, func(line int, row []string) {
		dateCell := cell(row, recDate)
		if dateCell == "" {
			return
		}
		date, ok := parseDate(dateCell)
		if !ok {
			res.fail(line, "invalid date %q", dateCell)
			return
		}
		r := &domain.CashReconciliation{
			Date:         date,
			OpeningCash:  amountOrZero(cell(row, recOpening)),
			CashSales:    amountOrZero(cell(row, recCashSales)),
			CountedCash:  amountOrZero(cell(row, recCounted)),
			Coins:        amountOrZero(cell(row, recCoins)),
			OnlineIncome: amountOrZero(cell(row, recOnline)),
			Notes:        cell(row, recNotes),
			RecordedBy:   recordedBy,
		}
		r.Reconcile()
		res.add(r, r.CountedCash+r.Coins)
	})
	return res
}
