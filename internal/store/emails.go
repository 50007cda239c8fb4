package store

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/XIYBHK/MailFlow/internal/command"
	"github.com/XIYBHK/MailFlow/pkg/types"
)

// LoadFolders refreshes the folder list for the active account. Silent.
// The bootstrap folder list stays in place when no account exists.
func (s *Store) LoadFolders(ctx context.Context) {
	s.mu.Lock()
	acct, ok := s.resolveAccountLocked()
	if !ok {
		s.errMsg = ErrMsgNoAccounts
		s.mu.Unlock()
		s.notify()
		return
	}
	s.mu.Unlock()
	s.notify()

	folders, err := s.cmd.FetchFolders(ctx, acct.ID)
	if err != nil {
		s.logger.WithError(err).WithField("account_id", acct.ID).Warn("Failed to load folders")
		s.update(func() { s.errMsg = err.Error() })
		return
	}

	s.update(func() { s.folders = folders })
}

// LoadEmails fetches one page of the given folder into the email list
// and records the folder as selected. Silent. With no accounts at all it
// short-circuits with a fixed error and an empty list, without calling
// the host. Concurrent calls race last-write-wins on the list; there is
// no sequencing guard.
func (s *Store) LoadEmails(ctx context.Context, folder string, q command.EmailQuery) {
	s.mu.Lock()
	acct, ok := s.resolveAccountLocked()
	if !ok {
		s.errMsg = ErrMsgNoAccounts
		s.isLoadingEmails = false
		s.emails = []types.EmailSummary{}
		s.mu.Unlock()
		s.notify()
		return
	}
	s.isLoadingEmails = true
	s.errMsg = ""
	s.selectedFolder = folder
	s.mu.Unlock()
	s.notify()

	q = q.Normalize()
	emails, err := s.cmd.FetchEmails(ctx, acct.ID, folder, q)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"account_id": acct.ID,
			"folder":     folder,
		}).Warn("Failed to load emails")
		s.update(func() {
			s.errMsg = err.Error()
			s.isLoadingEmails = false
		})
		return
	}

	s.logger.WithFields(logrus.Fields{
		"folder": folder,
		"count":  len(emails),
	}).Debug("Loaded emails")

	s.update(func() {
		s.emails = emails
		s.isLoadingEmails = false
	})
}

// LoadEmailDetail fetches the full message for (folder, uid) into the
// current-email slot. Silent.
func (s *Store) LoadEmailDetail(ctx context.Context, folder string, uid uint32, forceRefresh bool) {
	s.mu.Lock()
	acct, ok := s.resolveAccountLocked()
	if !ok {
		s.errMsg = ErrMsgNoAccounts
		s.mu.Unlock()
		s.notify()
		return
	}
	s.isLoadingEmail = true
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()

	email, err := s.cmd.FetchEmailDetail(ctx, acct.ID, folder, uid, forceRefresh)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"folder": folder,
			"uid":    uid,
		}).Warn("Failed to load email detail")
		s.update(func() {
			s.errMsg = err.Error()
			s.isLoadingEmail = false
		})
		return
	}

	s.update(func() {
		s.currentEmail = email
		s.isLoadingEmail = false
	})
}

// MarkAsRead flips the read flag on the host and mirrors it locally on
// the matching summary, without re-fetching the list. Silent; a missing
// current account is a no-op, and the existing error banner is left
// untouched on start since this runs from view-lifecycle hooks.
func (s *Store) MarkAsRead(ctx context.Context, folder string, uid uint32) {
	s.mu.Lock()
	current := s.currentAccount
	s.mu.Unlock()
	if current == nil {
		return
	}

	if err := s.cmd.MarkEmailRead(ctx, current.ID, folder, uid); err != nil {
		s.logger.WithError(err).WithField("uid", uid).Warn("Failed to mark email read")
		s.update(func() { s.errMsg = err.Error() })
		return
	}

	s.update(func() {
		for i := range s.emails {
			if s.emails[i].UID == uid {
				s.emails[i].IsRead = true
			}
		}
	})
}

// DeleteEmail removes the message on the host and drops the matching
// summary from the in-memory list. Propagating so confirmation dialogs
// can react. A missing current account is a no-op.
func (s *Store) DeleteEmail(ctx context.Context, folder string, uid uint32) error {
	s.mu.Lock()
	current := s.currentAccount
	s.mu.Unlock()
	if current == nil {
		return nil
	}

	if err := s.cmd.DeleteEmail(ctx, current.ID, folder, uid); err != nil {
		s.logger.WithError(err).WithField("uid", uid).Error("Failed to delete email")
		s.update(func() { s.errMsg = err.Error() })
		return err
	}

	s.removeSummary(uid)
	return nil
}

// MoveEmail moves the message to destFolder on the host and drops the
// summary from the source list. The destination list is not updated;
// it is re-fetched when that folder is opened. Propagating.
func (s *Store) MoveEmail(ctx context.Context, folder string, uid uint32, destFolder string) error {
	s.mu.Lock()
	current := s.currentAccount
	s.mu.Unlock()
	if current == nil {
		return nil
	}

	if err := s.cmd.MoveEmail(ctx, current.ID, folder, uid, destFolder); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"uid":  uid,
			"dest": destFolder,
		}).Error("Failed to move email")
		s.update(func() { s.errMsg = err.Error() })
		return err
	}

	s.removeSummary(uid)
	return nil
}

// removeSummary drops every summary matching uid from the list
func (s *Store) removeSummary(uid uint32) {
	s.update(func() {
		kept := s.emails[:0]
		for _, e := range s.emails {
			if e.UID != uid {
				kept = append(kept, e)
			}
		}
		s.emails = kept
	})
}

// SendEmail submits an outgoing message through the current account.
// Propagating; with no current account it rejects with a fixed
// precondition error and makes no host call.
func (s *Store) SendEmail(ctx context.Context, to []string, subject, body string, isHTML bool) error {
	s.mu.Lock()
	current := s.currentAccount
	s.mu.Unlock()

	if current == nil {
		err := errors.New(ErrMsgNoCurrentAcct)
		s.update(func() { s.errMsg = err.Error() })
		return err
	}

	err := s.cmd.SendEmail(ctx, current.ID, command.SendEmailRequest{
		To:      to,
		Subject: subject,
		Body:    body,
		IsHTML:  isHTML,
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to send email")
		s.update(func() { s.errMsg = err.Error() })
		return err
	}
	return nil
}
