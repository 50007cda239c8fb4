package hostsim

import (
	"context"
	"fmt"
	"strings"

	"github.com/XIYBHK/MailFlow/internal/command"
	"github.com/XIYBHK/MailFlow/pkg/types"
)

// The AI operations answer with deterministic keyword heuristics so the
// UI can be exercised without an inference backend or an API key.

const summaryMaxRunes = 120

// classifyKeywords maps a category to trigger words checked against the
// subject, sender and body (lowercased)
var classifyKeywords = []struct {
	category string
	words    []string
}{
	{types.CategorySpam, []string{"中奖", "lottery", "免费领取", "点击领取", "verify your account"}},
	{types.CategoryAds, []string{"优惠", "折扣", "特价", "促销", "sale", "deal"}},
	{types.CategorySubscription, []string{"订阅", "unsubscribe", "newsletter", "退订"}},
	{types.CategoryWork, []string{"会议", "项目", "周报", "review", "deadline", "meeting"}},
	{types.CategoryPersonal, []string{"生日", "聚会", "家人", "朋友"}},
}

// ClassifyEmail picks a category by keyword match, defaulting to other
func (h *Host) ClassifyEmail(ctx context.Context, req command.ClassifyRequest) (string, error) {
	haystack := strings.ToLower(req.Subject + " " + req.From + " " + req.Body)
	for _, entry := range classifyKeywords {
		for _, word := range entry.words {
			if strings.Contains(haystack, word) {
				return entry.category, nil
			}
		}
	}
	return types.CategoryOther, nil
}

// SummarizeEmail returns a truncated lead of the content
func (h *Host) SummarizeEmail(ctx context.Context, content, language string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("邮件内容为空，无法生成摘要")
	}
	if language == "" {
		language = command.DefaultSummaryLanguage
	}

	lead := content
	if runes := []rune(content); len(runes) > summaryMaxRunes {
		lead = string(runes[:summaryMaxRunes]) + "……"
	}
	if language == "zh" {
		return "摘要：" + lead, nil
	}
	return "Summary: " + lead, nil
}

// TranslateText echoes the text tagged with the target language
func (h *Host) TranslateText(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("翻译内容为空")
	}
	return fmt.Sprintf("[%s] %s", targetLang, text), nil
}

// GenerateReply drafts a short acknowledgement reply
func (h *Host) GenerateReply(ctx context.Context, req command.ClassifyRequest) (string, error) {
	var sb strings.Builder
	sb.WriteString("你好，\n\n")
	if req.Subject != "" {
		sb.WriteString(fmt.Sprintf("来信「%s」已收到，", req.Subject))
	} else {
		sb.WriteString("来信已收到，")
	}
	sb.WriteString("我会尽快处理并回复你。\n\n祝好")
	return sb.String(), nil
}
