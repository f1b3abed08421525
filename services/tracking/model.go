package tracking

import "time"

// Timeline is the customer facing history of a single order: every status
// the order has been in, in chronological order.
type Timeline struct {
	OrderUID    string
	CustomerUID string
	VendorUID   string
	Entries     []TimelineEntry
}

type TimelineEntry struct {
	Status string
	At     time.Time
}

func (t Timeline) currentStatus() string {
	if len(t.Entries) == 0 {
		return ""
	}
	return t.Entries[len(t.Entries)-1].Status
}
