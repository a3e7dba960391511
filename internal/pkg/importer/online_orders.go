package importer

import (
	"strings"

	"github.com/brewline/cafe-pos/internal/core/domain"
)

// Online order columns: platform, platform order id, date, gross amount,
// discount percent, commission percent.
const (
	onPlatform = iota
	onOrderID
	onDate
	onGross
	onDiscount
	onCommission
)

// OnlineOrders maps platform export rows into online orders with computed
// payouts.
func OnlineOrders(rows [][]string, recordedBy string) Result[*domain.OnlineOrder] {
	var res Result[*domain.OnlineOrder]
	dataRows(rows, func(line int, row []string) {
		platform, orderID, dateCell, grossCell := cell(row, onPlatform), cell(row, onOrderID), cell(row, onDate), cell(row, onGross)
		if platform == "" || orderID == "" || dateCell == "" || grossCell == "" {
			return
		}
		date, ok := parseDate(dateCell)
		if !ok {
			res.fail(line, "invalid date %q", dateCell)
			return
		}
		gross, ok := parseAmount(grossCell)
		if !ok || gross < 0 {
			res.fail(line, "invalid gross amount %q", grossCell)
			return
		}
		o := &domain.OnlineOrder{
			Platform:          NormalizePlatform(platform),
			PlatformOrderID:   orderID,
			Date:              date,
			GrossAmount:       gross,
			DiscountPercent:   amountOrZero(strings.TrimSuffix(cell(row, onDiscount), "%")),
			CommissionPercent: amountOrZero(strings.TrimSuffix(cell(row, onCommission), "%")),
			Status:            domain.OnlinePending,
			RecordedBy:        recordedBy,
		}
		o.ComputePayout()
		res.add(o, gross)
	})
	return res
}

// NormalizePlatform maps free-text platform names onto the known platforms.
func NormalizePlatform(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case domain.PlatformZomato:
		return domain.PlatformZomato
	case domain.PlatformSwiggy:
		return domain.PlatformSwiggy
	default:
		return domain.PlatformOther
	}
}
