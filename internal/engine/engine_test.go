package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
	"github.com/AlexRiks/AccountingDesk-IA/internal/service"
	"github.com/AlexRiks/AccountingDesk-IA/internal/storage"
)

func newTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func loadCatalog(t *testing.T, store *storage.SQLiteStorage, entries ...model.CategoryEntry) {
	t.Helper()
	require.NoError(t, store.ReplaceCategories(context.Background(), entries))
}

var travelFoodCatalog = []model.CategoryEntry{
	{Category: "Travel", Subcategory: "Flights"},
	{Category: "Travel", Subcategory: "Accommodation"},
	{Category: "Food", Subcategory: "Groceries"},
}

func TestClassify_EmptyDescription(t *testing.T) {
	// The store must never be touched for empty input, so a tracking stub
	// stands in for real storage.
	store := &trackingStore{}
	oracle := NewMockOracle("Travel - Flights")
	eng := New(store, store, oracle, nil)

	for _, description := range []string{"", "   ", "\t\n", "*** !!!"} {
		result := eng.Classify(context.Background(), description)
		assert.Equal(t, model.SourceUncategorized, result.Source, "input %q", description)
		assert.Equal(t, model.CategoryUncategorized, result.Category)
		assert.Empty(t, result.Subcategory)
	}

	assert.Zero(t, store.lookups, "correction store must not be consulted")
	assert.Zero(t, store.catalogReads, "catalog must not be consulted")
	assert.Zero(t, oracle.CallCount(), "oracle must not be consulted")
}

func TestClassify_CorrectionWins(t *testing.T) {
	store := newTestStorage(t)
	loadCatalog(t, store, travelFoodCatalog...)

	oracle := NewMockOracle("")
	oracle.Err = errors.New("oracle is down")
	eng := New(store, store, oracle, nil)

	require.NoError(t, eng.RecordCorrection(context.Background(), "STARBUCKS COFFEE", "Expenses", "Coffee Shop"))

	// Any case/punctuation variant must hit the correction, oracle failure
	// notwithstanding.
	for _, variant := range []string{"STARBUCKS COFFEE", "Starbucks Coffee", "  starbucks * coffee  "} {
		result := eng.Classify(context.Background(), variant)
		assert.Equal(t, model.SourceCorrection, result.Source, "variant %q", variant)
		assert.Equal(t, "Expenses", result.Category)
		assert.Equal(t, "Coffee Shop", result.Subcategory)
	}

	assert.Zero(t, oracle.CallCount(), "correction path must never touch the oracle")
}

func TestClassify_CorrectionOverridesRemovedCatalogEntry(t *testing.T) {
	store := newTestStorage(t)
	loadCatalog(t, store, travelFoodCatalog...)
	eng := New(store, store, NewMockOracle("Uncategorized"), nil)

	ctx := context.Background()
	require.NoError(t, eng.RecordCorrection(ctx, "GYM MEMBERSHIP", "Health", "Fitness"))

	// Corrections are authoritative even when the pair is not in the catalog.
	result := eng.Classify(ctx, "gym membership")
	assert.Equal(t, model.SourceCorrection, result.Source)
	assert.Equal(t, "Health", result.Category)
	assert.Equal(t, "Fitness", result.Subcategory)
}

func TestRecordCorrection_UpsertKeepsLatest(t *testing.T) {
	store := newTestStorage(t)
	loadCatalog(t, store, travelFoodCatalog...)
	eng := New(store, store, NewMockOracle("Uncategorized"), nil)

	ctx := context.Background()
	require.NoError(t, eng.RecordCorrection(ctx, "AMZN Mktp", "Shopping", "Online"))
	require.NoError(t, eng.RecordCorrection(ctx, "amzn mktp", "Household", "Supplies"))

	result := eng.Classify(ctx, "AMZN MKTP")
	assert.Equal(t, model.SourceCorrection, result.Source)
	assert.Equal(t, "Household", result.Category)
	assert.Equal(t, "Supplies", result.Subcategory)
}

func TestRecordCorrection_UncategorizedForcesEmptySubcategory(t *testing.T) {
	store := newTestStorage(t)
	eng := New(store, store, nil, nil)

	ctx := context.Background()
	require.NoError(t, eng.RecordCorrection(ctx, "MYSTERY CHARGE", model.CategoryUncategorized, "ignored"))

	result := eng.Classify(ctx, "mystery charge")
	assert.Equal(t, model.SourceCorrection, result.Source)
	assert.Equal(t, model.CategoryUncategorized, result.Category)
	assert.Empty(t, result.Subcategory)
}

func TestRecordCorrection_EmptyNormalizedFails(t *testing.T) {
	store := newTestStorage(t)
	eng := New(store, store, nil, nil)

	err := eng.RecordCorrection(context.Background(), "???", "Expenses", "Misc")
	assert.Error(t, err)
}

func TestClassify_OracleAnswerAccepted(t *testing.T) {
	store := newTestStorage(t)
	loadCatalog(t, store, travelFoodCatalog...)

	oracle := NewMockOracle("Travel - Accommodation")
	eng := New(store, store, oracle, nil)

	result := eng.Classify(context.Background(), "AIRBNB * HMROAS92K1 PAYMENT")
	assert.Equal(t, model.SourceOracle, result.Source)
	assert.Equal(t, "Travel", result.Category)
	assert.Equal(t, "Accommodation", result.Subcategory)

	// The oracle sees the original, non-normalized description.
	calls := oracle.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "AIRBNB * HMROAS92K1 PAYMENT", calls[0].Description)
	assert.ElementsMatch(t, travelFoodCatalog, calls[0].Candidates)
}

func TestClassify_OracleAnswerRejected(t *testing.T) {
	store := newTestStorage(t)
	loadCatalog(t, store, travelFoodCatalog...)

	tests := []struct {
		name   string
		answer string
	}{
		{name: "hallucinated category", answer: "Gambling - Casinos"},
		{name: "partial match", answer: "Travel"},
		{name: "extra commentary", answer: "I think this is Travel - Flights"},
		{name: "wrong delimiter", answer: "Travel: Flights"},
		{name: "lowercase sentinel", answer: "uncategorized"},
		{name: "empty answer", answer: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := New(store, store, NewMockOracle(tt.answer), nil)
			result := eng.Classify(context.Background(), "SOME WEIRD CHARGE")
			assert.Equal(t, model.SourceUncategorized, result.Source)
			assert.Equal(t, model.CategoryUncategorized, result.Category)
			assert.Empty(t, result.Subcategory)
		})
	}
}

func TestClassify_OracleSentinelAnswer(t *testing.T) {
	store := newTestStorage(t)
	loadCatalog(t, store, travelFoodCatalog...)
	eng := New(store, store, NewMockOracle("Uncategorized"), nil)

	result := eng.Classify(context.Background(), "SOMETHING OBSCURE")
	assert.Equal(t, model.SourceUncategorized, result.Source)
}

func TestClassify_TrimsOracleAnswer(t *testing.T) {
	store := newTestStorage(t)
	loadCatalog(t, store, travelFoodCatalog...)
	eng := New(store, store, NewMockOracle("  Travel - Flights\n"), nil)

	result := eng.Classify(context.Background(), "UNITED AIRLINES")
	assert.Equal(t, model.SourceOracle, result.Source)
	assert.Equal(t, "Travel", result.Category)
	assert.Equal(t, "Flights", result.Subcategory)
}

func TestClassify_EmptyCatalog(t *testing.T) {
	store := newTestStorage(t)

	oracle := NewMockOracle("Travel - Flights")
	eng := New(store, store, oracle, nil)

	result := eng.Classify(context.Background(), "some desc")
	assert.Equal(t, model.SourceError, result.Source)
	assert.Equal(t, model.SubcategoryCatalogEmpty, result.Subcategory)
	assert.Zero(t, oracle.CallCount(), "no oracle call without a candidate set")
}

func TestClassify_OracleUnavailable(t *testing.T) {
	store := newTestStorage(t)
	loadCatalog(t, store, travelFoodCatalog...)

	oracle := NewMockOracle("")
	oracle.Err = errors.New("connection refused")
	eng := New(store, store, oracle, nil)

	result := eng.Classify(context.Background(), "NEW MERCHANT")
	assert.Equal(t, model.SourceError, result.Source)
	assert.Equal(t, model.SubcategoryOracleUnavailable, result.Subcategory)

	// No retry inside the engine.
	assert.Equal(t, 1, oracle.CallCount())
}

func TestClassify_CanceledOracleCall(t *testing.T) {
	store := newTestStorage(t)
	loadCatalog(t, store, travelFoodCatalog...)

	oracle := NewMockOracle("")
	oracle.Err = context.Canceled
	eng := New(store, store, oracle, nil)

	// Cancellation resolves to OracleUnavailable, never a silent default.
	result := eng.Classify(context.Background(), "SLOW MERCHANT")
	assert.Equal(t, model.SourceError, result.Source)
	assert.Equal(t, model.SubcategoryOracleUnavailable, result.Subcategory)
}

func TestClassify_EndToEnd(t *testing.T) {
	store := newTestStorage(t)
	loadCatalog(t, store, travelFoodCatalog...)
	ctx := context.Background()

	// First pass: no correction, oracle answers from the catalog.
	oracle := NewMockOracle("Travel - Accommodation")
	eng := New(store, store, oracle, nil)

	result := eng.Classify(ctx, "AIRBNB * HMROAS92K1 PAYMENT")
	require.Equal(t, model.SourceOracle, result.Source)
	require.Equal(t, "Travel", result.Category)
	require.Equal(t, "Accommodation", result.Subcategory)

	// User confirms; from now on the oracle can fail outright.
	require.NoError(t, eng.RecordCorrection(ctx, "AIRBNB * HMROAS92K1 PAYMENT", "Travel", "Accommodation"))

	brokenOracle := NewMockOracle("")
	brokenOracle.Err = errors.New("oracle down")
	eng = New(store, store, brokenOracle, nil)

	result = eng.Classify(ctx, "airbnb * hmroas92k1 payment")
	assert.Equal(t, model.SourceCorrection, result.Source)
	assert.Equal(t, "Travel", result.Category)
	assert.Equal(t, "Accommodation", result.Subcategory)
	assert.Zero(t, brokenOracle.CallCount())
}

func TestClassify_BrokenCorrectionStoreFallsBackToOracle(t *testing.T) {
	catalogStore := newTestStorage(t)
	loadCatalog(t, catalogStore, travelFoodCatalog...)

	corrections := &trackingStore{lookupErr: errors.New("disk error")}
	eng := New(corrections, catalogStore, NewMockOracle("Food - Groceries"), nil)

	result := eng.Classify(context.Background(), "WHOLE FOODS")
	assert.Equal(t, model.SourceOracle, result.Source)
	assert.Equal(t, "Food", result.Category)
	assert.Equal(t, "Groceries", result.Subcategory)
}

// trackingStore counts storage accesses and can simulate failures.
type trackingStore struct {
	lookupErr    error
	lookups      int
	catalogReads int
}

func (s *trackingStore) GetCorrection(_ context.Context, _ string) (*model.CorrectionRecord, error) {
	s.lookups++
	return nil, s.lookupErr
}

func (s *trackingStore) SaveCorrection(_ context.Context, _, _, _ string) error {
	return nil
}

func (s *trackingStore) GetCategories(_ context.Context) ([]model.CategoryEntry, error) {
	s.catalogReads++
	return nil, nil
}

func (s *trackingStore) CategoryExists(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (s *trackingStore) ReplaceCategories(_ context.Context, _ []model.CategoryEntry) error {
	return nil
}

var (
	_ service.CorrectionStore = (*trackingStore)(nil)
	_ service.CategoryStore   = (*trackingStore)(nil)
)
