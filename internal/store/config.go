package store

import (
	"context"

	"github.com/XIYBHK/MailFlow/pkg/types"
)

// LoadConfig fetches the application configuration from the host. Silent.
func (s *Store) LoadConfig(ctx context.Context) {
	cfg, err := s.cmd.GetAppConfig(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load config")
		s.update(func() { s.errMsg = err.Error() })
		return
	}
	s.update(func() { s.config = cfg })
}

// UpdateConfig persists the configuration on the host and mirrors the
// submitted value into the snapshot without re-fetching. Propagating.
func (s *Store) UpdateConfig(ctx context.Context, cfg *types.AppConfig) error {
	if err := s.cmd.UpdateAppConfig(ctx, cfg); err != nil {
		s.logger.WithError(err).Error("Failed to update config")
		s.update(func() { s.errMsg = err.Error() })
		return err
	}
	s.update(func() { s.config = cfg })
	return nil
}

// SetAIAPIKey stores the AI key on the host, then reloads the config so
// the snapshot reflects it. Propagating.
func (s *Store) SetAIAPIKey(ctx context.Context, apiKey string) error {
	if err := s.cmd.SetAIAPIKey(ctx, apiKey); err != nil {
		s.logger.WithError(err).Error("Failed to set AI API key")
		s.update(func() { s.errMsg = err.Error() })
		return err
	}
	s.LoadConfig(ctx)
	return nil
}

// LoadFilterRules refreshes the filter rule list from the host. Silent.
func (s *Store) LoadFilterRules(ctx context.Context) {
	rules, err := s.cmd.GetFilterRules(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load filter rules")
		s.update(func() { s.errMsg = err.Error() })
		return
	}
	s.update(func() { s.filterRules = rules })
}

// SaveFilterRule creates or updates a rule on the host, then reloads the
// rule list. Propagating.
func (s *Store) SaveFilterRule(ctx context.Context, rule *types.FilterRule) error {
	if err := s.cmd.SaveFilterRule(ctx, rule); err != nil {
		s.logger.WithError(err).Error("Failed to save filter rule")
		s.update(func() { s.errMsg = err.Error() })
		return err
	}
	s.LoadFilterRules(ctx)
	return nil
}

// DeleteFilterRule removes a rule on the host, then reloads the rule
// list. Propagating.
func (s *Store) DeleteFilterRule(ctx context.Context, id string) error {
	if err := s.cmd.DeleteFilterRule(ctx, id); err != nil {
		s.logger.WithError(err).WithField("rule_id", id).Error("Failed to delete filter rule")
		s.update(func() { s.errMsg = err.Error() })
		return err
	}
	s.LoadFilterRules(ctx)
	return nil
}
