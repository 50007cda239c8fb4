package types

// AppConfig is the application configuration held by the host and mirrored
// into the store after get_app_config
type AppConfig struct {
	Accounts         []string `json:"accounts"`
	DefaultAccountID string   `json:"default_account_id,omitempty"`
	AI               AiConfig `json:"ai_config"`
	UI               UiConfig `json:"ui_config"`
}

// AiConfig holds the AI provider settings
type AiConfig struct {
	APIKey          string `json:"zhipu_api_key,omitempty"`
	APIBase         string `json:"zhipu_api_base"`
	Model           string `json:"zhipu_model"`
	AutoClassify    bool   `json:"auto_classify"`
	AutoSummarize   bool   `json:"auto_summarize"`
	SummaryLanguage string `json:"summary_language"`
}

// UiConfig holds UI preferences
type UiConfig struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	EmailsPerPage uint32 `json:"emails_per_page"`
	ShowPreview   bool   `json:"show_preview"`
	FontSize      uint32 `json:"font_size"`
}

// DefaultAppConfig returns the configuration used before the host has one
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Accounts: []string{},
		AI: AiConfig{
			APIBase:         "https://open.bigmodel.cn/api/paas/v4/",
			Model:           "glm-4.7",
			SummaryLanguage: "zh",
		},
		UI: UiConfig{
			Theme:         "light",
			Language:      "zh",
			EmailsPerPage: 50,
			ShowPreview:   true,
			FontSize:      14,
		},
	}
}
