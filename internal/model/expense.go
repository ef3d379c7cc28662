package model

import "time"

// UnknownUsername is stored when the platform gives no display name.
const UnknownUsername = "Unknown"

// ExpenseRecord is one persisted expense row. The id is assigned by the
// store; Username is a display-time snapshot, never a join key.
type ExpenseRecord struct {
	ID        int64
	UserID    int64
	Username  string
	Category  string
	Amount    float64
	Timestamp time.Time
}

// CategoryTotal is one aggregate row: the sum and entry count for a single
// category over a queried window.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
}
