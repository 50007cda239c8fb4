package store

import (
	"context"
	"errors"

	"github.com/XIYBHK/MailFlow/internal/command"
	"github.com/XIYBHK/MailFlow/pkg/types"
)

// LoadAccounts refreshes the account list from the host. Silent: a
// failure is recorded in the error field, not returned, since this is
// typically fired from startup hooks with no caller to catch it.
func (s *Store) LoadAccounts(ctx context.Context) {
	s.update(func() {
		s.isLoadingAccounts = true
		s.errMsg = ""
	})

	accounts, err := s.cmd.ListAccounts(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load accounts")
		s.update(func() {
			s.errMsg = err.Error()
			s.isLoadingAccounts = false
		})
		return
	}

	s.update(func() {
		s.isLoadingAccounts = false
		if len(accounts) == 0 {
			s.accounts = nil
			s.currentAccount = nil
			s.emails = []types.EmailSummary{}
			return
		}
		s.accounts = accounts
		s.reconcileCurrentLocked()
	})
}

// reconcileCurrentLocked keeps the current account consistent with the
// account list: an identity still present is kept untouched, otherwise
// the default-flagged entry wins, then the first in list order.
// Must be called with s.mu held and a non-empty account list.
func (s *Store) reconcileCurrentLocked() {
	if s.currentAccount != nil {
		for i := range s.accounts {
			if s.accounts[i].ID == s.currentAccount.ID {
				acct := s.accounts[i]
				s.currentAccount = &acct
				return
			}
		}
	}
	pick := s.accounts[0]
	for i := range s.accounts {
		if s.accounts[i].IsDefault {
			pick = s.accounts[i]
			break
		}
	}
	s.currentAccount = &pick
}

// AddAccount creates an account on the host, reloads the list and makes
// the new account current. Propagating: the error is both recorded and
// returned so the add-account modal can stay open on failure.
func (s *Store) AddAccount(ctx context.Context, email, password, name, provider string) error {
	s.update(func() {
		s.isLoadingAccounts = true
		s.errMsg = ""
	})

	accountID, err := s.cmd.AddAccount(ctx, command.AddAccountRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Provider: provider,
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to add account")
		s.update(func() {
			s.errMsg = err.Error()
			s.isLoadingAccounts = false
		})
		return err
	}

	s.LoadAccounts(ctx)

	s.update(func() {
		for i := range s.accounts {
			if s.accounts[i].ID == accountID {
				acct := s.accounts[i]
				s.currentAccount = &acct
				break
			}
		}
	})
	return nil
}

// DeleteAccount removes an account on the host and reloads the list.
// Propagating.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	s.update(func() { s.errMsg = "" })

	if err := s.cmd.DeleteAccount(ctx, id); err != nil {
		s.logger.WithError(err).WithField("account_id", id).Error("Failed to delete account")
		s.update(func() { s.errMsg = err.Error() })
		return err
	}

	s.LoadAccounts(ctx)
	return nil
}

// TestConnection asks the host to verify the current account's server
// connectivity and returns its report. Propagating.
func (s *Store) TestConnection(ctx context.Context) (string, error) {
	s.mu.Lock()
	current := s.currentAccount
	s.mu.Unlock()

	if current == nil {
		err := errors.New(ErrMsgNoUsableAccount)
		s.update(func() { s.errMsg = err.Error() })
		return "", err
	}

	result, err := s.cmd.TestConnection(ctx, current.ID)
	if err != nil {
		s.logger.WithError(err).WithField("account_id", current.ID).Error("Connection test failed")
		s.update(func() { s.errMsg = err.Error() })
		return "", err
	}
	return result, nil
}
