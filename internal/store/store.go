// Package store implements the client orchestration store: the single
// stateful coordinator between UI intents and the host command layer.
// Every operation follows the same shape: mark loading, invoke the
// Commander, merge the result into the snapshot, record any failure in
// the error field, clear loading. Reads go through Snapshot().
package store

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/XIYBHK/MailFlow/internal/command"
	"github.com/XIYBHK/MailFlow/internal/view"
	"github.com/XIYBHK/MailFlow/pkg/types"
)

// Precondition error messages surfaced without contacting the host
const (
	ErrMsgNoAccounts      = "请先添加邮箱账户"
	ErrMsgNoCurrentAcct   = "请先选择邮箱账户"
	ErrMsgNoUsableAccount = "没有可用的账户"
)

// Snapshot is a consistent view of the store state. All slices and
// pointers are copies; mutating a snapshot never affects the store.
type Snapshot struct {
	Accounts       []types.Account
	CurrentAccount *types.Account

	Emails         []types.EmailSummary
	CurrentEmail   *types.Email
	SelectedFolder string
	Folders        []string

	IsLoadingAccounts bool
	IsLoadingEmails   bool
	IsLoadingEmail    bool

	Config      *types.AppConfig
	FilterRules []types.FilterRule

	// Error holds the last operation failure message; empty means none.
	// It is only cleared explicitly (ClearError) or by refresh-style
	// operations at their start, never by an unrelated success.
	Error string
}

// Store is the client orchestration store. Construct one per process
// with New and share it; all methods are safe for concurrent use.
type Store struct {
	cmd    command.Commander
	logger *logrus.Logger

	mu             sync.Mutex
	accounts       []types.Account
	currentAccount *types.Account

	emails         []types.EmailSummary
	currentEmail   *types.Email
	selectedFolder string
	folders        []string

	isLoadingAccounts bool
	isLoadingEmails   bool
	isLoadingEmail    bool

	config      *types.AppConfig
	filterRules []types.FilterRule

	errMsg string

	subMu sync.Mutex
	subs  map[chan struct{}]struct{}
}

// New creates a store bound to a Commander. The folder list starts with
// the bootstrap defaults until fetch_folders replaces it.
func New(cmd command.Commander, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		cmd:            cmd,
		logger:         logger,
		emails:         []types.EmailSummary{},
		selectedFolder: "INBOX",
		folders:        append([]string(nil), view.DefaultFolders...),
		subs:           make(map[chan struct{}]struct{}),
	}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Accounts:          append([]types.Account(nil), s.accounts...),
		Emails:            append([]types.EmailSummary(nil), s.emails...),
		SelectedFolder:    s.selectedFolder,
		Folders:           append([]string(nil), s.folders...),
		IsLoadingAccounts: s.isLoadingAccounts,
		IsLoadingEmails:   s.isLoadingEmails,
		IsLoadingEmail:    s.isLoadingEmail,
		FilterRules:       append([]types.FilterRule(nil), s.filterRules...),
		Error:             s.errMsg,
	}
	if s.currentAccount != nil {
		acct := *s.currentAccount
		snap.CurrentAccount = &acct
	}
	if s.currentEmail != nil {
		email := *s.currentEmail
		snap.CurrentEmail = &email
	}
	if s.config != nil {
		cfg := *s.config
		snap.Config = &cfg
	}
	return snap
}

// Watch subscribes to change notifications. The returned channel
// receives a signal after each state mutation; the cancel func must be
// called when the subscriber goes away. Notifications are coalesced:
// a slow subscriber sees at least one signal, not one per mutation.
func (s *Store) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	return ch, func() {
		s.subMu.Lock()
		delete(s.subs, ch)
		s.subMu.Unlock()
	}
}

// update runs fn under the state lock, then notifies subscribers.
// Each call is one atomic state transition.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SetError sets or clears the user-visible error banner
func (s *Store) SetError(msg string) {
	s.update(func() { s.errMsg = msg })
}

// ClearError dismisses the error banner
func (s *Store) ClearError() {
	s.update(func() { s.errMsg = "" })
}

// SetFolder records the selected folder without fetching it
func (s *Store) SetFolder(folder string) {
	s.update(func() { s.selectedFolder = folder })
}

// ClearCurrentEmail drops the open email detail when navigating back
func (s *Store) ClearCurrentEmail() {
	s.update(func() { s.currentEmail = nil })
}

// SetCurrentAccount switches the active account. Passing nil clears it.
func (s *Store) SetCurrentAccount(account *types.Account) {
	s.update(func() {
		if account == nil {
			s.currentAccount = nil
			return
		}
		acct := *account
		s.currentAccount = &acct
	})
}

// resolveAccountLocked applies the shared account resolution policy for
// folder/email loads: use the current account, or auto-select the first
// one when the list is non-empty. Must be called with s.mu held.
// Returns false when no account exists at all.
func (s *Store) resolveAccountLocked() (types.Account, bool) {
	if s.currentAccount != nil {
		return *s.currentAccount, true
	}
	if len(s.accounts) == 0 {
		return types.Account{}, false
	}
	acct := s.accounts[0]
	s.currentAccount = &acct
	s.logger.WithField("account_id", acct.ID).Debug("Auto-selected first account")
	return acct, true
}
