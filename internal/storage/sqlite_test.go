package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"expensebot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite runs the store against a real in-memory SQLite database.
type StoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (suite *StoreTestSuite) SetupTest() {
	store, err := NewStore(":memory:")
	require.NoError(suite.T(), err, "failed to create test store")
	suite.store = store
	suite.ctx = context.Background()
}

func (suite *StoreTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
	}
}

func (suite *StoreTestSuite) TestInsertAssignsSequentialIDs() {
	now := time.Now()

	first, err := suite.store.Insert(suite.ctx, 1, "alice", "Grocery", 10.00, now)
	require.NoError(suite.T(), err)
	second, err := suite.store.Insert(suite.ctx, 1, "alice", "Car", 20.00, now)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), first+1, second, "ids should be assigned monotonically")
}

func (suite *StoreTestSuite) TestAggregateByCategory() {
	now := time.Date(2024, time.March, 13, 12, 0, 0, 0, time.Local)

	_, err := suite.store.Insert(suite.ctx, 1, "alice", "Grocery", 10.00, now)
	require.NoError(suite.T(), err)
	_, err = suite.store.Insert(suite.ctx, 1, "alice", "Grocery", 5.50, now.Add(time.Minute))
	require.NoError(suite.T(), err)
	_, err = suite.store.Insert(suite.ctx, 1, "alice", "Car", 20.00, now.Add(2*time.Minute))
	require.NoError(suite.T(), err)

	totals, err := suite.store.AggregateByCategory(suite.ctx, 1,
		now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(suite.T(), err)

	assert.ElementsMatch(suite.T(), []model.CategoryTotal{
		{Category: "Grocery", Total: 15.50, Count: 2},
		{Category: "Car", Total: 20.00, Count: 1},
	}, totals)
}

func (suite *StoreTestSuite) TestAggregateOmitsEmptyCategories() {
	now := time.Now()

	_, err := suite.store.Insert(suite.ctx, 1, "alice", "Health", 42.00, now)
	require.NoError(suite.T(), err)

	totals, err := suite.store.AggregateByCategory(suite.ctx, 1,
		now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(suite.T(), err)

	require.Len(suite.T(), totals, 1, "categories without records must be omitted")
	assert.Equal(suite.T(), "Health", totals[0].Category)
}

func (suite *StoreTestSuite) TestAggregateScopedToUser() {
	now := time.Now()

	_, err := suite.store.Insert(suite.ctx, 1, "alice", "Grocery", 10.00, now)
	require.NoError(suite.T(), err)
	_, err = suite.store.Insert(suite.ctx, 2, "bob", "Grocery", 99.00, now)
	require.NoError(suite.T(), err)

	totals, err := suite.store.AggregateByCategory(suite.ctx, 1,
		now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(suite.T(), err)

	require.Len(suite.T(), totals, 1)
	assert.Equal(suite.T(), 10.00, totals[0].Total)
	assert.Equal(suite.T(), 1, totals[0].Count)
}

func (suite *StoreTestSuite) TestAggregateBoundsAreInclusive() {
	end := time.Date(2024, time.March, 13, 23, 59, 59, 0, time.Local)
	start := time.Date(2024, time.March, 13, 0, 0, 0, 0, time.Local)

	_, err := suite.store.Insert(suite.ctx, 1, "alice", "Car", 1.00, start)
	require.NoError(suite.T(), err)
	_, err = suite.store.Insert(suite.ctx, 1, "alice", "Car", 2.00, end)
	require.NoError(suite.T(), err)
	// One second past the end bound must be excluded.
	_, err = suite.store.Insert(suite.ctx, 1, "alice", "Car", 4.00, end.Add(time.Second))
	require.NoError(suite.T(), err)

	totals, err := suite.store.AggregateByCategory(suite.ctx, 1, start, end)
	require.NoError(suite.T(), err)

	require.Len(suite.T(), totals, 1)
	assert.Equal(suite.T(), 3.00, totals[0].Total)
	assert.Equal(suite.T(), 2, totals[0].Count)
}

func (suite *StoreTestSuite) TestAllReturnsInsertionOrderAcrossUsers() {
	now := time.Date(2024, time.March, 13, 12, 0, 0, 0, time.Local)

	_, err := suite.store.Insert(suite.ctx, 2, "bob", "Car", 20.00, now)
	require.NoError(suite.T(), err)
	_, err = suite.store.Insert(suite.ctx, 1, "alice", "Grocery", 10.00, now.Add(-time.Hour))
	require.NoError(suite.T(), err)
	_, err = suite.store.Insert(suite.ctx, 1, "", "Other", 0.00, now)
	require.NoError(suite.T(), err)

	records, err := suite.store.All(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), records, 3)

	// Insertion order, not time order.
	assert.Equal(suite.T(), "bob", records[0].Username)
	assert.Equal(suite.T(), "alice", records[1].Username)
	assert.Equal(suite.T(), "Other", records[2].Category)
	assert.Equal(suite.T(), now, records[0].Timestamp, "timestamps survive the string round trip")
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestSchemaInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	_, err = store.Insert(ctx, 1, "alice", "Grocery", 10.00, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same file must keep existing records intact.
	store, err = NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "Grocery", records[0].Category)
}
