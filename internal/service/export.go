package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"expensebot/internal/storage"
)

var exportHeader = []string{"ID", "User ID", "Username", "Category", "Amount", "Datetime"}

// ExportFile is a rendered CSV export ready for delivery as a document.
type ExportFile struct {
	Name string
	Data []byte
}

// Export serializes every stored record, across all users, as CSV in
// insertion order. The whole-ledger scope is intentional for a shared
// family ledger. An empty store returns ErrNoExpenses; any other failure
// comes back as an *ExportError carrying the cause text.
func (s *ExpenseTracker) Export(ctx context.Context, now time.Time) (*ExportFile, error) {
	records, err := s.repo.All(ctx)
	if err != nil {
		return nil, &ExportError{Message: err.Error()}
	}
	if len(records) == 0 {
		return nil, ErrNoExpenses
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, &ExportError{Message: err.Error()}
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(r.UserID, 10),
			r.Username,
			r.Category,
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
			r.Timestamp.Format(storage.TimeLayout),
		}
		if err := w.Write(row); err != nil {
			return nil, &ExportError{Message: err.Error()}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &ExportError{Message: err.Error()}
	}

	return &ExportFile{
		Name: "expenses_" + now.Format("2006-01-02-15-04-05") + ".csv",
		Data: buf.Bytes(),
	}, nil
}
