package types

// Account represents a stored email account (no credentials; the host keeps
// passwords in its own secret store)
type Account struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	IMAPServer string `json:"imap_server"`
	IMAPPort   uint16 `json:"imap_port"`
	SMTPServer string `json:"smtp_server"`
	SMTPPort   uint16 `json:"smtp_port"`
	Name       string `json:"name"`
	IsDefault  bool   `json:"is_default"`
}

// ProviderPreset holds the server settings for a known mail provider
type ProviderPreset struct {
	IMAPServer string
	IMAPPort   uint16
	SMTPServer string
	SMTPPort   uint16
}

// Supported provider tags for add-account
const (
	Provider163   = "163"
	ProviderQQ    = "qq"
	ProviderGmail = "gmail"
)

// ProviderPresets maps a provider tag to its server settings
var ProviderPresets = map[string]ProviderPreset{
	Provider163:   {IMAPServer: "imap.163.com", IMAPPort: 993, SMTPServer: "smtp.163.com", SMTPPort: 465},
	ProviderQQ:    {IMAPServer: "imap.qq.com", IMAPPort: 993, SMTPServer: "smtp.qq.com", SMTPPort: 465},
	ProviderGmail: {IMAPServer: "imap.gmail.com", IMAPPort: 993, SMTPServer: "smtp.gmail.com", SMTPPort: 587},
}
