// Package memstore is the process-lifetime Directory backend. It holds
// the account directory, ledger, withdrawal log, and quota state in
// memory behind a single mutex, which makes every mutation atomic
// relative to concurrent reads.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"reward-wallet-go/internal/models"
	"reward-wallet-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.Directory.
var _ store.Directory = (*Service)(nil)

type Service struct {
	mu          sync.RWMutex
	accounts    map[string]*models.Account
	ledger      map[string][]models.LedgerEntry
	withdrawals map[string]*models.WithdrawalRequest
	quota       map[string]models.TaskQuotaState
}

func NewService() *Service {
	return &Service{
		accounts:    make(map[string]*models.Account),
		ledger:      make(map[string][]models.LedgerEntry),
		withdrawals: make(map[string]*models.WithdrawalRequest),
		quota:       make(map[string]models.TaskQuotaState),
	}
}

func (s *Service) Close() {}

// --- Accounts ---

func (s *Service) CreateAccount(ctx context.Context, params store.CreateAccountParams) (*models.Account, error) {
	email := store.NormalizeEmail(params.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[email]; exists {
		return nil, fmt.Errorf("%w: %s", store.ErrDuplicateEmail, email)
	}

	now := time.Now()
	account := &models.Account{
		Id:        params.Id,
		Name:      params.Name,
		Email:     email,
		Password:  params.Password,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.accounts[email] = account

	zap.L().Info("Account created", zap.String("id", account.Id), zap.String("email", email))
	copied := *account
	return &copied, nil
}

func (s *Service) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, err := s.getLocked(email)
	if err != nil {
		return nil, err
	}
	copied := *account
	return &copied, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, *account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (s *Service) UpdateProfile(ctx context.Context, email string, params store.ProfileParams) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.getLocked(email)
	if err != nil {
		return nil, err
	}

	account.Name = params.Name
	account.Address = params.Address
	account.Upi = params.Upi
	account.UpdatedAt = time.Now()

	copied := *account
	return &copied, nil
}

// --- Wallet ---

func (s *Service) Balance(ctx context.Context, email string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, err := s.getLocked(email)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *Service) Credit(ctx context.Context, email string, amount decimal.Decimal, params store.EntryParams) (*models.LedgerEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("credit amount must be positive, got %s", amount.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyEntryLocked(email, amount, params.EntryType, params.Reference, time.Now())
}

func (s *Service) Debit(ctx context.Context, email string, amount decimal.Decimal, params store.EntryParams) (*models.LedgerEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("debit amount must be positive, got %s", amount.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyEntryLocked(email, amount.Neg(), params.EntryType, params.Reference, time.Now())
}

func (s *Service) ClaimSignupBonus(ctx context.Context, email string, amount decimal.Decimal) (*models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.getLocked(email)
	if err != nil {
		return nil, err
	}
	if account.BonusClaimed {
		return nil, fmt.Errorf("%w: %s", store.ErrBonusAlreadyClaimed, account.Email)
	}

	entry, err := s.applyEntryLocked(email, amount, models.EntrySignupBonus, "one-time sign-up bonus", time.Now())
	if err != nil {
		return nil, err
	}
	account.BonusClaimed = true
	return entry, nil
}

// --- Withdrawals ---

func (s *Service) CreateWithdrawal(ctx context.Context, params store.CreateWithdrawalParams) (*models.WithdrawalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request := &models.WithdrawalRequest{
		Id:          uuid.New().String(),
		Email:       store.NormalizeEmail(params.Email),
		Amount:      params.Amount,
		Destination: params.Destination,
		Status:      models.WithdrawalPending,
		CreatedAt:   params.Now,
	}

	// Debit first: if it fails, no request is logged.
	reference := fmt.Sprintf("withdrawal request %s to %s", request.Id, params.Destination)
	if _, err := s.applyEntryLocked(request.Email, params.Amount.Neg(), models.EntryWithdrawal, reference, params.Now); err != nil {
		return nil, err
	}

	s.withdrawals[request.Id] = request

	zap.L().Info("Withdrawal request created",
		zap.String("request_id", request.Id),
		zap.String("email", request.Email),
		zap.String("amount", params.Amount.String()))

	copied := *request
	return &copied, nil
}

func (s *Service) GetWithdrawal(ctx context.Context, id string) (*models.WithdrawalRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, exists := s.withdrawals[id]
	if !exists {
		return nil, fmt.Errorf("%w: withdrawal request %s", store.ErrNotFound, id)
	}
	copied := *request
	return &copied, nil
}

func (s *Service) GetWithdrawals(ctx context.Context, email, status string) ([]models.WithdrawalRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = store.NormalizeEmail(email)
	var requests []models.WithdrawalRequest
	for _, request := range s.withdrawals {
		if email != "" && request.Email != email {
			continue
		}
		if status != "" && request.Status != status {
			continue
		}
		requests = append(requests, *request)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func (s *Service) TransitionWithdrawal(ctx context.Context, id, from, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, exists := s.withdrawals[id]
	if !exists {
		return false, fmt.Errorf("%w: withdrawal request %s", store.ErrNotFound, id)
	}
	if request.Status != from {
		zap.L().Warn("Withdrawal transition skipped, request not in expected status",
			zap.String("request_id", id),
			zap.String("expected", from),
			zap.String("actual", request.Status))
		return false, nil
	}

	request.Status = to
	zap.L().Info("Withdrawal request transitioned",
		zap.String("request_id", id),
		zap.String("from", from),
		zap.String("to", to))
	return true, nil
}

// --- Quota ---

func (s *Service) GetQuotaState(ctx context.Context, email string) (models.TaskQuotaState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quota[store.NormalizeEmail(email)], nil
}

func (s *Service) SaveQuotaState(ctx context.Context, email string, state models.TaskQuotaState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quota[store.NormalizeEmail(email)] = state
	return nil
}

// --- Ledger ---

func (s *Service) GetLedgerHistory(ctx context.Context, email string, limit, offset int) ([]models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.ledger[store.NormalizeEmail(email)]
	// Newest first, matching the SQLite backend.
	reversed := make([]models.LedgerEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}

	if offset >= len(reversed) {
		return nil, nil
	}
	reversed = reversed[offset:]
	if limit > 0 && limit < len(reversed) {
		reversed = reversed[:limit]
	}
	return reversed, nil
}

// --- internals ---

func (s *Service) getLocked(email string) (*models.Account, error) {
	account, exists := s.accounts[store.NormalizeEmail(email)]
	if !exists {
		return nil, fmt.Errorf("%w: account %s", store.ErrNotFound, email)
	}
	return account, nil
}

// applyEntryLocked is the single write path for every balance mutation:
// it validates funds, records the audit entry, and moves the balance in
// one step under the held lock.
func (s *Service) applyEntryLocked(email string, amount decimal.Decimal, entryType, reference string, now time.Time) (*models.LedgerEntry, error) {
	account, err := s.getLocked(email)
	if err != nil {
		return nil, err
	}

	balanceAfter := account.Balance.Add(amount)
	if balanceAfter.IsNegative() {
		return nil, fmt.Errorf("%w: balance=%s, debit=%s", store.ErrInsufficientFunds, account.Balance.String(), amount.Neg().String())
	}

	entry := models.LedgerEntry{
		Id:            uuid.New().String(),
		Email:         account.Email,
		EntryType:     entryType,
		Amount:        amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  balanceAfter,
		Reference:     reference,
		CreatedAt:     now,
	}

	account.Balance = balanceAfter
	account.UpdatedAt = now
	s.ledger[account.Email] = append(s.ledger[account.Email], entry)

	copied := entry
	return &copied, nil
}
