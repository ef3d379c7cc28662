package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"expensebot/internal/model"
	"expensebot/internal/period"
)

// NoExpensesMessage is the stats reply when no records match the period.
const NoExpensesMessage = "No expenses logged yet."

// Repository defines the store operations the tracker needs.
type Repository interface {
	Insert(ctx context.Context, userID int64, username, category string, amount float64, ts time.Time) (int64, error)
	AggregateByCategory(ctx context.Context, userID int64, start, end time.Time) ([]model.CategoryTotal, error)
	All(ctx context.Context) ([]model.ExpenseRecord, error)
}

// ExpenseTracker drives the logging conversation and answers stats and
// export requests. It owns the per-user pending category selections:
// picking a category moves a user into the awaiting-amount state, and the
// next text that parses as a valid amount completes the expense. Pending
// selections are in-memory only and lost on restart.
type ExpenseTracker struct {
	repo      Repository
	weekStart time.Weekday

	mu      sync.Mutex
	pending map[int64]string
}

// LoggedExpense reports what a completed log transition persisted.
type LoggedExpense struct {
	ID       int64
	Category string
	Amount   float64
}

// Report is a formatted stats reply plus the aggregate rows it was built
// from, for callers that also render a chart.
type Report struct {
	Text   string
	Totals []model.CategoryTotal
}

// NewExpenseTracker creates a tracker over repo. weekStart sets the first
// day of the "This week" stats period.
func NewExpenseTracker(repo Repository, weekStart time.Weekday) *ExpenseTracker {
	return &ExpenseTracker{
		repo:      repo,
		weekStart: weekStart,
		pending:   make(map[int64]string),
	}
}

// SelectCategory records category as the user's pending selection,
// overwriting any earlier one. Last selection wins; there is no separate
// cancel affordance.
func (s *ExpenseTracker) SelectCategory(userID int64, category string) error {
	if !model.IsCategory(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	s.mu.Lock()
	s.pending[userID] = category
	s.mu.Unlock()
	return nil
}

// PendingCategory returns the user's pending selection, if any.
func (s *ExpenseTracker) PendingCategory(userID int64) (string, bool) {
	s.mu.Lock()
	cat, ok := s.pending[userID]
	s.mu.Unlock()
	return cat, ok
}

// LogExpense handles free text from a user. With no pending selection it
// returns ErrNoPendingCategory and the text should be ignored. Text that
// does not parse as a finite non-negative number returns ErrInvalidAmount
// and keeps the pending selection so the user can retry. Otherwise the
// expense is persisted with the current timestamp and the selection is
// cleared. An empty username falls back to the Unknown sentinel.
func (s *ExpenseTracker) LogExpense(ctx context.Context, userID int64, username, text string, now time.Time) (*LoggedExpense, error) {
	s.mu.Lock()
	category, ok := s.pending[userID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNoPendingCategory
	}

	amount, err := parseAmount(text)
	if err != nil {
		return nil, err
	}

	if username == "" {
		username = model.UnknownUsername
	}

	id, err := s.repo.Insert(ctx, userID, username, category, amount, now)
	if err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}

	s.mu.Lock()
	delete(s.pending, userID)
	s.mu.Unlock()

	return &LoggedExpense{ID: id, Category: category, Amount: amount}, nil
}

// Report resolves the named period against now and formats the user's
// per-category totals for that window.
func (s *ExpenseTracker) Report(ctx context.Context, userID int64, periodName string, now time.Time) (*Report, error) {
	rng, err := period.Resolve(periodName, now, s.weekStart)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.AggregateByCategory(ctx, userID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}

	if len(totals) == 0 {
		return &Report{Text: NoExpensesMessage}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your expense statistics for %s:\n", strings.ToLower(periodName))
	for _, t := range totals {
		fmt.Fprintf(&b, "%s: %.2f (Entries: %d)\n", t.Category, t.Total, t.Count)
	}

	return &Report{Text: b.String(), Totals: totals}, nil
}

func parseAmount(text string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}
