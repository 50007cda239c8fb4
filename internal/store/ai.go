package store

import (
	"context"

	"github.com/XIYBHK/MailFlow/internal/command"
)

// All AI operations are propagating: the result goes back to the caller
// (it is never stored in the snapshot) and a failure is both recorded in
// the error field and returned so the invoking dialog can react.

// ClassifyEmail asks the AI layer for a category string
func (s *Store) ClassifyEmail(ctx context.Context, subject, from, body string) (string, error) {
	category, err := s.cmd.ClassifyEmail(ctx, command.ClassifyRequest{
		Subject: subject,
		From:    from,
		Body:    body,
	})
	if err != nil {
		s.logger.WithError(err).Warn("Email classification failed")
		s.update(func() { s.errMsg = err.Error() })
		return "", err
	}
	return category, nil
}

// SummarizeEmail asks the AI layer for a summary. An empty language
// falls back to the default ("zh").
func (s *Store) SummarizeEmail(ctx context.Context, content, language string) (string, error) {
	if language == "" {
		language = command.DefaultSummaryLanguage
	}
	summary, err := s.cmd.SummarizeEmail(ctx, content, language)
	if err != nil {
		s.logger.WithError(err).Warn("Email summarization failed")
		s.update(func() { s.errMsg = err.Error() })
		return "", err
	}
	return summary, nil
}

// TranslateText translates text into the target language
func (s *Store) TranslateText(ctx context.Context, text, targetLang string) (string, error) {
	translated, err := s.cmd.TranslateText(ctx, text, targetLang)
	if err != nil {
		s.logger.WithError(err).Warn("Translation failed")
		s.update(func() { s.errMsg = err.Error() })
		return "", err
	}
	return translated, nil
}

// GenerateReply asks the AI layer to draft a reply
func (s *Store) GenerateReply(ctx context.Context, subject, from, body string) (string, error) {
	draft, err := s.cmd.GenerateReply(ctx, command.ClassifyRequest{
		Subject: subject,
		From:    from,
		Body:    body,
	})
	if err != nil {
		s.logger.WithError(err).Warn("Reply generation failed")
		s.update(func() { s.errMsg = err.Error() })
		return "", err
	}
	return draft, nil
}
