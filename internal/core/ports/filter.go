package ports

import "time"

// ListFilter narrows list queries. Empty OutletID means all outlets (admin
// reads); zero From/To leave the date range open.
type ListFilter struct {
	OutletID string
	From     time.Time
	To       time.Time
	Limit    int
}
