// Package store owns the canonical application state: the four top-level
// collections plus the transient account filter selection. All mutations
// go through here; each successful mutation is followed by a snapshot
// write whose failure is logged and swallowed, never surfaced to the
// caller.
package store

import (
	"github.com/rs/zerolog"

	apperrors "trade-master/internal/errors"
	"trade-master/internal/ledger"
	"trade-master/internal/logging"
	"trade-master/internal/models"
	"trade-master/internal/planner"
	"trade-master/internal/snapshot"
	"trade-master/pkg/id"
)

// AllAccounts is the filter selection meaning "no account filter".
const AllAccounts = "all"

// Store is the single authoritative holder of the application state.
// Access is single-threaded by construction: every CLI invocation runs
// one mutation to completion before the next is accepted.
type Store struct {
	state    *models.AppState
	selected string
	backend  snapshot.Backend
	logger   zerolog.Logger
}

// Open loads the persisted state through the given backend. A missing or
// corrupt snapshot starts the store empty; Open never fails on bad data.
func Open(backend snapshot.Backend, logger zerolog.Logger) (*Store, error) {
	state, err := backend.Load()
	if err != nil {
		return nil, err
	}
	return &Store{
		state:    state,
		selected: AllAccounts,
		backend:  backend,
		logger:   logger,
	}, nil
}

// persist writes the full state document. Failures are logged, never
// returned: a failed write leaves the in-memory state authoritative and
// the next mutation retries.
func (s *Store) persist() {
	if err := s.backend.Save(s.state); err != nil {
		logging.LogSnapshotError(s.logger, err)
	}
}

// Close releases the snapshot backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// --- read side ---

// Accounts returns a copy of the account collection.
func (s *Store) Accounts() []models.Account {
	out := make([]models.Account, len(s.state.Accounts))
	copy(out, s.state.Accounts)
	return out
}

// Account looks up an account by id.
func (s *Store) Account(accountID string) (models.Account, bool) {
	for _, a := range s.state.Accounts {
		if a.ID == accountID {
			return a, true
		}
	}
	return models.Account{}, false
}

// Trades returns a copy of the trade collection, newest first.
func (s *Store) Trades() []models.Trade {
	out := make([]models.Trade, len(s.state.Trades))
	copy(out, s.state.Trades)
	return out
}

// FilteredTrades returns the trades visible under the current account
// selection.
func (s *Store) FilteredTrades() []models.Trade {
	if s.selected == AllAccounts {
		return s.Trades()
	}
	return ledger.AccountTrades(s.state.Trades, s.selected)
}

// WeeklyPlans returns a copy of the plan collection.
func (s *Store) WeeklyPlans() []models.WeeklyPlan {
	out := make([]models.WeeklyPlan, len(s.state.WeeklyPlans))
	copy(out, s.state.WeeklyPlans)
	return out
}

// Config returns the persisted application settings.
func (s *Store) Config() models.Config {
	return s.state.Config
}

// State returns a copy of the full four-collection document, for export.
func (s *Store) State() *models.AppState {
	return &models.AppState{
		Accounts:    s.Accounts(),
		Trades:      s.Trades(),
		WeeklyPlans: s.WeeklyPlans(),
		Config:      s.state.Config,
	}
}

// SelectedAccountID returns the current account filter selection.
func (s *Store) SelectedAccountID() string {
	return s.selected
}

// SelectAccount sets the account filter. Unknown ids fall back to "all".
func (s *Store) SelectAccount(accountID string) {
	if accountID == AllAccounts {
		s.selected = AllAccounts
		return
	}
	if _, ok := s.Account(accountID); ok {
		s.selected = accountID
	} else {
		s.selected = AllAccounts
	}
}

// --- accounts ---

// AddAccount validates and stores a new account, assigning its id.
func (s *Store) AddAccount(acc models.Account) (models.Account, error) {
	if acc.Status == "" {
		acc.Status = models.StatusActive
	}
	if err := validateAccount(acc); err != nil {
		return models.Account{}, err
	}
	acc.ID = id.New()
	s.state.Accounts = append(s.state.Accounts, acc)
	s.persist()
	return acc, nil
}

// UpdateAccount replaces an existing account wholesale, matched by id.
func (s *Store) UpdateAccount(acc models.Account) error {
	if err := validateAccount(acc); err != nil {
		return err
	}
	for i, a := range s.state.Accounts {
		if a.ID == acc.ID {
			s.state.Accounts[i] = acc
			s.persist()
			return nil
		}
	}
	return apperrors.NewStoreError("account", acc.ID, "update", apperrors.ErrAccountNotFound)
}

// DeleteAccount removes an account and cascades to every trade and weekly
// plan referencing it, as one auditable step. If the account was the
// active filter selection, the selection resets to "all".
func (s *Store) DeleteAccount(accountID string) error {
	if _, ok := s.Account(accountID); !ok {
		return apperrors.NewStoreError("account", accountID, "delete", apperrors.ErrAccountNotFound)
	}

	accounts := s.state.Accounts[:0]
	for _, a := range s.state.Accounts {
		if a.ID != accountID {
			accounts = append(accounts, a)
		}
	}
	s.state.Accounts = accounts

	s.cascadeDelete(accountID)

	if s.selected == accountID {
		s.selected = AllAccounts
	}
	s.persist()
	return nil
}

// cascadeDelete drops all trades and plans owned by the account.
func (s *Store) cascadeDelete(accountID string) {
	trades := s.state.Trades[:0]
	for _, t := range s.state.Trades {
		if t.AccountID != accountID {
			trades = append(trades, t)
		}
	}
	s.state.Trades = trades

	plans := s.state.WeeklyPlans[:0]
	for _, p := range s.state.WeeklyPlans {
		if p.AccountID != accountID {
			plans = append(plans, p)
		}
	}
	s.state.WeeklyPlans = plans
}

// --- trades ---

// AddTrade computes the trade's profit, assigns its id, and prepends it to
// the collection (newest first). The owning account must exist at the time
// of the call.
func (s *Store) AddTrade(t models.Trade) (models.Trade, error) {
	if _, ok := s.Account(t.AccountID); !ok {
		return models.Trade{}, apperrors.NewStoreError("trade", t.AccountID, "add", apperrors.ErrAccountNotFound)
	}
	if _, err := t.Time(); err != nil {
		return models.Trade{}, apperrors.NewValidationError("date", t.Date, "unrecognized timestamp")
	}
	if t.ValuePerPoint <= 0 {
		return models.Trade{}, apperrors.NewValidationError("valuePerPoint", t.ValuePerPoint, "must be positive")
	}

	t.ID = id.New()
	t.ProfitUSD = ledger.TradeProfit(t.Points, t.ValuePerPoint)
	s.state.Trades = append([]models.Trade{t}, s.state.Trades...)

	logging.LogTradeAdded(s.logger, t.ID, t.AccountID, t.Asset, t.ProfitUSD)
	s.persist()
	return t, nil
}

// DeleteTrade removes a trade by id. Trades are never edited in place:
// corrections are delete-and-recreate.
func (s *Store) DeleteTrade(tradeID string) error {
	for i, t := range s.state.Trades {
		if t.ID == tradeID {
			s.state.Trades = append(s.state.Trades[:i], s.state.Trades[i+1:]...)
			s.persist()
			return nil
		}
	}
	return apperrors.NewStoreError("trade", tradeID, "delete", apperrors.ErrTradeNotFound)
}

// --- weekly plans ---

// UpsertWeeklyPlan saves a plan keyed on (accountId, weekStart). The week
// start is normalized to its Monday before anything else happens. An
// existing plan for the key is overwritten in place, preserving its id;
// otherwise a new plan is created. No two plans ever coexist for one key.
func (s *Store) UpsertWeeklyPlan(plan models.WeeklyPlan) (models.WeeklyPlan, error) {
	if _, ok := s.Account(plan.AccountID); !ok {
		return models.WeeklyPlan{}, apperrors.NewStoreError("plan", plan.AccountID, "upsert", apperrors.ErrAccountNotFound)
	}
	ts, err := models.ParseDate(plan.WeekStart)
	if err != nil {
		return models.WeeklyPlan{}, apperrors.NewValidationError("weekStart", plan.WeekStart, "expected YYYY-MM-DD")
	}
	// Trades key to their Monday via StartOfWeek; the plan key must
	// collapse the same way or a mid-week date creates a plan no trade
	// can ever join.
	plan.WeekStart = planner.StartOfWeek(ts)

	if existing, ok := planner.FindPlan(s.state.WeeklyPlans, plan.AccountID, plan.WeekStart); ok {
		plan.ID = existing.ID
		for i, p := range s.state.WeeklyPlans {
			if p.ID == existing.ID {
				s.state.WeeklyPlans[i] = plan
				break
			}
		}
	} else {
		plan.ID = id.New()
		s.state.WeeklyPlans = append([]models.WeeklyPlan{plan}, s.state.WeeklyPlans...)
	}
	s.persist()
	return plan, nil
}

// --- bulk operations ---

// ReplaceAll replaces the four collections wholesale. Used by import and
// reset; there is no merge. Cross-references are deliberately not
// validated: a trade or plan with a dangling account id simply renders as
// "unknown account" in aggregate views.
func (s *Store) ReplaceAll(state *models.AppState) {
	state.Normalize()
	s.state = state
	s.selected = AllAccounts
	s.persist()
}

// UpdateConfig replaces the settings singleton wholesale.
func (s *Store) UpdateConfig(cfg models.Config) {
	s.state.Config = cfg
	s.persist()
}

// Reset restores empty collections and default settings.
func (s *Store) Reset() {
	s.ReplaceAll(models.EmptyState())
}

func validateAccount(acc models.Account) error {
	if acc.Name == "" {
		return apperrors.NewValidationError("name", acc.Name, "required")
	}
	if acc.SplitPercent < 0 || acc.SplitPercent > 100 {
		return apperrors.NewValidationError("splitPercent", acc.SplitPercent, "must be between 0 and 100")
	}
	return nil
}
