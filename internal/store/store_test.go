package store

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trade-master/internal/errors"
	"trade-master/internal/models"
	"trade-master/internal/planner"
	"trade-master/internal/snapshot"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	backend, err := snapshot.NewFileBackend(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	s, err := Open(backend, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustAddAccount(t *testing.T, s *Store, name string, split float64) models.Account {
	t.Helper()
	acc, err := s.AddAccount(models.Account{Name: name, SplitPercent: split, StartDate: "2026-01-05"})
	require.NoError(t, err)
	return acc
}

func mustAddTrade(t *testing.T, s *Store, accountID string, points, perPoint float64) models.Trade {
	t.Helper()
	tr, err := s.AddTrade(models.Trade{
		AccountID:     accountID,
		Date:          "2026-08-31T10:00",
		Asset:         "EURUSD",
		Type:          models.TradeBuy,
		Points:        points,
		ValuePerPoint: perPoint,
	})
	require.NoError(t, err)
	return tr
}

func TestAddAccountAssignsIDAndDefaultsStatus(t *testing.T) {
	s := newTestStore(t)

	acc := mustAddAccount(t, s, "FTMO 100k", 20)
	assert.NotEmpty(t, acc.ID)
	assert.Equal(t, models.StatusActive, acc.Status)

	got, ok := s.Account(acc.ID)
	assert.True(t, ok)
	assert.Equal(t, acc, got)
}

func TestAddAccountValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddAccount(models.Account{SplitPercent: 20})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = s.AddAccount(models.Account{Name: "x", SplitPercent: 120})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "splitPercent", verr.Field)
}

func TestUpdateAccountReplacesWholesale(t *testing.T) {
	s := newTestStore(t)
	acc := mustAddAccount(t, s, "FTMO 100k", 20)

	acc.Name = "FTMO 200k"
	acc.Status = models.StatusInactive
	require.NoError(t, s.UpdateAccount(acc))

	got, _ := s.Account(acc.ID)
	assert.Equal(t, "FTMO 200k", got.Name)
	assert.False(t, got.IsActive())

	err := s.UpdateAccount(models.Account{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestAddTradeDerivesProfitAndPrepends(t *testing.T) {
	s := newTestStore(t)
	acc := mustAddAccount(t, s, "FTMO 100k", 20)

	first := mustAddTrade(t, s, acc.ID, 500, 1)
	assert.InDelta(t, 500.0, first.ProfitUSD, 1e-9)

	second := mustAddTrade(t, s, acc.ID, -30, 2)
	assert.InDelta(t, -60.0, second.ProfitUSD, 1e-9)

	trades := s.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, second.ID, trades[0].ID, "newest trade comes first")
	assert.Equal(t, first.ID, trades[1].ID)
}

func TestAddTradeValidation(t *testing.T) {
	s := newTestStore(t)
	acc := mustAddAccount(t, s, "FTMO 100k", 20)

	_, err := s.AddTrade(models.Trade{AccountID: "ghost", Date: "2026-08-31", ValuePerPoint: 1})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)

	_, err = s.AddTrade(models.Trade{AccountID: acc.ID, Date: "nope", ValuePerPoint: 1})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)

	_, err = s.AddTrade(models.Trade{AccountID: acc.ID, Date: "2026-08-31", ValuePerPoint: 0})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "valuePerPoint", verr.Field)
}

func TestDeleteTrade(t *testing.T) {
	s := newTestStore(t)
	acc := mustAddAccount(t, s, "FTMO 100k", 20)
	tr := mustAddTrade(t, s, acc.ID, 10, 1)

	require.NoError(t, s.DeleteTrade(tr.ID))
	assert.Empty(t, s.Trades())

	assert.ErrorIs(t, s.DeleteTrade(tr.ID), apperrors.ErrTradeNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	s := newTestStore(t)
	keep := mustAddAccount(t, s, "Keep", 10)
	doomed := mustAddAccount(t, s, "Doomed", 20)

	mustAddTrade(t, s, keep.ID, 10, 1)
	mustAddTrade(t, s, doomed.ID, 20, 1)
	mustAddTrade(t, s, doomed.ID, 30, 1)

	_, err := s.UpsertWeeklyPlan(models.WeeklyPlan{AccountID: doomed.ID, WeekStart: "2026-08-31", GoalUSD: 100})
	require.NoError(t, err)
	_, err = s.UpsertWeeklyPlan(models.WeeklyPlan{AccountID: keep.ID, WeekStart: "2026-08-31", GoalUSD: 200})
	require.NoError(t, err)

	s.SelectAccount(doomed.ID)
	require.NoError(t, s.DeleteAccount(doomed.ID))

	for _, tr := range s.Trades() {
		assert.Equal(t, keep.ID, tr.AccountID)
	}
	assert.Len(t, s.Trades(), 1)

	plans := s.WeeklyPlans()
	require.Len(t, plans, 1)
	assert.Equal(t, keep.ID, plans[0].AccountID)

	assert.Equal(t, AllAccounts, s.SelectedAccountID(), "selection resets when its account goes away")

	assert.ErrorIs(t, s.DeleteAccount(doomed.ID), apperrors.ErrAccountNotFound)
}

func TestUpsertWeeklyPlanOverwritesPreservingID(t *testing.T) {
	s := newTestStore(t)
	acc := mustAddAccount(t, s, "FTMO 100k", 20)

	first, err := s.UpsertWeeklyPlan(models.WeeklyPlan{AccountID: acc.ID, WeekStart: "2026-08-31", GoalUSD: 1000})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := s.UpsertWeeklyPlan(models.WeeklyPlan{AccountID: acc.ID, WeekStart: "2026-08-31", GoalUSD: 1500, Strategy: "london open"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "the overwrite keeps the original plan id")

	plans := s.WeeklyPlans()
	require.Len(t, plans, 1, "one plan per (account, week) pair")
	assert.InDelta(t, 1500.0, plans[0].GoalUSD, 1e-9)
	assert.Equal(t, "london open", plans[0].Strategy)
}

func TestUpsertWeeklyPlanDistinctWeeksCoexist(t *testing.T) {
	s := newTestStore(t)
	acc := mustAddAccount(t, s, "FTMO 100k", 20)

	_, err := s.UpsertWeeklyPlan(models.WeeklyPlan{AccountID: acc.ID, WeekStart: "2026-08-31", GoalUSD: 100})
	require.NoError(t, err)
	_, err = s.UpsertWeeklyPlan(models.WeeklyPlan{AccountID: acc.ID, WeekStart: "2026-09-07", GoalUSD: 200})
	require.NoError(t, err)

	assert.Len(t, s.WeeklyPlans(), 2)
}

func TestUpsertWeeklyPlanNormalizesWeekStartToMonday(t *testing.T) {
	s := newTestStore(t)
	acc := mustAddAccount(t, s, "FTMO 100k", 20)

	// 2026-09-02 is a Wednesday; the stored key must be its Monday, or
	// trades landing that week would never find the plan.
	plan, err := s.UpsertWeeklyPlan(models.WeeklyPlan{AccountID: acc.ID, WeekStart: "2026-09-02", GoalUSD: 100})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", plan.WeekStart)

	tr, err := s.AddTrade(models.Trade{
		AccountID:     acc.ID,
		Date:          "2026-09-02T10:00",
		Asset:         "EURUSD",
		Type:          models.TradeBuy,
		Points:        50,
		ValuePerPoint: 2,
	})
	require.NoError(t, err)

	stats := planner.Stats(s.Trades(), plan, time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, stats.TradeCount)
	assert.InDelta(t, tr.ProfitUSD, stats.RealizedUSD, 1e-9)

	// Saving again with a different mid-week date hits the same plan.
	second, err := s.UpsertWeeklyPlan(models.WeeklyPlan{AccountID: acc.ID, WeekStart: "2026-09-04", GoalUSD: 200})
	require.NoError(t, err)
	assert.Equal(t, plan.ID, second.ID)
	assert.Len(t, s.WeeklyPlans(), 1)
}

func TestUpsertWeeklyPlanValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpsertWeeklyPlan(models.WeeklyPlan{AccountID: "ghost", WeekStart: "2026-08-31"})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)

	acc := mustAddAccount(t, s, "FTMO 100k", 20)
	_, err = s.UpsertWeeklyPlan(models.WeeklyPlan{AccountID: acc.ID, WeekStart: "week one"})
	var verr *apperrors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestMutationsWrapNotFoundWithContext(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteAccount("ghost")
	require.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	var serr *apperrors.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "account", serr.Entity)
	assert.Equal(t, "ghost", serr.ID)
	assert.Equal(t, "delete", serr.Op)

	err = s.DeleteTrade("ghost")
	require.ErrorIs(t, err, apperrors.ErrTradeNotFound)
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "trade", serr.Entity)
	assert.Equal(t, "delete", serr.Op)
}

func TestSelectAccountUnknownFallsBack(t *testing.T) {
	s := newTestStore(t)
	acc := mustAddAccount(t, s, "FTMO 100k", 20)

	s.SelectAccount(acc.ID)
	assert.Equal(t, acc.ID, s.SelectedAccountID())

	s.SelectAccount("nope")
	assert.Equal(t, AllAccounts, s.SelectedAccountID())
}

func TestFilteredTrades(t *testing.T) {
	s := newTestStore(t)
	a := mustAddAccount(t, s, "A", 0)
	b := mustAddAccount(t, s, "B", 0)
	mustAddTrade(t, s, a.ID, 1, 1)
	mustAddTrade(t, s, b.ID, 2, 1)

	assert.Len(t, s.FilteredTrades(), 2)

	s.SelectAccount(a.ID)
	filtered := s.FilteredTrades()
	require.Len(t, filtered, 1)
	assert.Equal(t, a.ID, filtered[0].AccountID)
}

func TestReplaceAllNormalizesAndResetsSelection(t *testing.T) {
	s := newTestStore(t)
	acc := mustAddAccount(t, s, "FTMO 100k", 20)
	s.SelectAccount(acc.ID)

	s.ReplaceAll(&models.AppState{
		Accounts: []models.Account{{ID: "x", Name: "Imported"}},
	})

	assert.Equal(t, AllAccounts, s.SelectedAccountID())
	assert.NotNil(t, s.Trades())
	assert.Empty(t, s.Trades())
	assert.Equal(t, models.DefaultConfig(), s.Config(), "a zero config is replaced by defaults")

	accounts := s.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "Imported", accounts[0].Name)
}

func TestResetRestoresDefaults(t *testing.T) {
	s := newTestStore(t)
	mustAddAccount(t, s, "FTMO 100k", 20)

	cfg := s.Config()
	cfg.USDToBRLRate = 9.99
	s.UpdateConfig(cfg)

	s.Reset()
	assert.Empty(t, s.Accounts())
	assert.InDelta(t, 5.50, s.Config().USDToBRLRate, 1e-9)
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	backend, err := snapshot.NewFileBackend(dir, zerolog.Nop())
	require.NoError(t, err)
	s, err := Open(backend, zerolog.Nop())
	require.NoError(t, err)

	acc := mustAddAccount(t, s, "FTMO 100k", 20)
	mustAddTrade(t, s, acc.ID, 500, 1)
	require.NoError(t, s.Close())

	backend2, err := snapshot.NewFileBackend(dir, zerolog.Nop())
	require.NoError(t, err)
	s2, err := Open(backend2, zerolog.Nop())
	require.NoError(t, err)
	defer s2.Close()

	require.Len(t, s2.Accounts(), 1)
	require.Len(t, s2.Trades(), 1)
	assert.InDelta(t, 500.0, s2.Trades()[0].ProfitUSD, 1e-9)
}
