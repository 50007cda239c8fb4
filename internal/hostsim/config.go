package hostsim

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/XIYBHK/MailFlow/pkg/types"
)

// GetAppConfig returns the stored configuration, or the defaults when
// none has been saved yet
func (h *Host) GetAppConfig(ctx context.Context) (*types.AppConfig, error) {
	var data string
	err := h.db.QueryRowContext(ctx, "SELECT data FROM app_config WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		cfg := types.DefaultAppConfig()
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg types.AppConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// UpdateAppConfig replaces the stored configuration wholesale
func (h *Host) UpdateAppConfig(ctx context.Context, cfg *types.AppConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO app_config (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data
	`, string(data))
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// SetAIAPIKey updates only the AI key inside the stored configuration
func (h *Host) SetAIAPIKey(ctx context.Context, apiKey string) error {
	cfg, err := h.GetAppConfig(ctx)
	if err != nil {
		return err
	}
	cfg.AI.APIKey = apiKey
	return h.UpdateAppConfig(ctx, cfg)
}

// GetFilterRules returns all stored filter rules
func (h *Host) GetFilterRules(ctx context.Context) ([]types.FilterRule, error) {
	rows, err := h.db.QueryContext(ctx, "SELECT data FROM filter_rules ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query filter rules: %w", err)
	}
	defer rows.Close()

	rules := []types.FilterRule{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan filter rule: %w", err)
		}
		var rule types.FilterRule
		if err := json.Unmarshal([]byte(data), &rule); err != nil {
			return nil, fmt.Errorf("failed to parse filter rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// SaveFilterRule creates or updates a rule, assigning an id when empty
func (h *Host) SaveFilterRule(ctx context.Context, rule *types.FilterRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	data, err := json.Marshal(rule)
	if err != nil {
		return fmt.Errorf("failed to marshal filter rule: %w", err)
	}
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO filter_rules (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data
	`, rule.ID, string(data))
	if err != nil {
		return fmt.Errorf("failed to save filter rule: %w", err)
	}
	return nil
}

// DeleteFilterRule removes a rule by id
func (h *Host) DeleteFilterRule(ctx context.Context, id string) error {
	result, err := h.db.ExecContext(ctx, "DELETE FROM filter_rules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete filter rule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("规则不存在: %s", id)
	}
	return nil
}
