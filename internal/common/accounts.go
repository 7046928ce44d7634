package common

import (
	"context"
	"fmt"

	"reward-wallet-go/internal/store"

	"go.uber.org/zap"
)

// AccountInfo represents simplified account information for command-line utilities
type AccountInfo struct {
	Id    string
	Name  string
	Email string
}

// ResolveAccounts retrieves accounts based on an optional email filter.
// If emailFilter is provided, returns a single account with that email.
// If emailFilter is empty, returns all accounts.
func ResolveAccounts(ctx context.Context, directory store.Directory, emailFilter string, logger *zap.Logger) ([]AccountInfo, error) {
	var accounts []AccountInfo

	if emailFilter != "" {
		logger.Info("Looking up account by email", zap.String("email", emailFilter))
		account, err := directory.GetAccount(ctx, emailFilter)
		if err != nil {
			return nil, fmt.Errorf("account not found: %w", err)
		}
		accounts = append(accounts, AccountInfo{
			Id:    account.Id,
			Name:  account.Name,
			Email: account.Email,
		})
	} else {
		all, err := directory.ListAccounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		for _, a := range all {
			accounts = append(accounts, AccountInfo{
				Id:    a.Id,
				Name:  a.Name,
				Email: a.Email,
			})
		}
	}

	return accounts, nil
}
