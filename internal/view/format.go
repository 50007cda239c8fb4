// Package view holds pure presentation helpers shared by list and detail
// rendering. Nothing here touches the store or the host.
package view

import (
	"fmt"
	"time"

	"github.com/XIYBHK/MailFlow/pkg/types"
)

// DefaultFolders is the bootstrap folder list shown before fetch_folders
// returns the real one
var DefaultFolders = []string{"INBOX", "草稿箱", "已发送", "垃圾邮件", "已删除"}

// categoryLabels maps a category to its display label
var categoryLabels = map[string]string{
	types.CategorySpam:         "垃圾",
	types.CategoryAds:          "广告",
	types.CategorySubscription: "订阅",
	types.CategoryWork:         "工作",
	types.CategoryPersonal:     "个人",
	types.CategoryOther:        "其他",
}

// categoryStyles maps a category to its badge style token
var categoryStyles = map[string]string{
	types.CategorySpam:         "bg-red-100 text-red-700 dark:bg-red-900/30 dark:text-red-400",
	types.CategoryAds:          "bg-orange-100 text-orange-700 dark:bg-orange-900/30 dark:text-orange-400",
	types.CategorySubscription: "bg-blue-100 text-blue-700 dark:bg-blue-900/30 dark:text-blue-400",
	types.CategoryWork:         "bg-purple-100 text-purple-700 dark:bg-purple-900/30 dark:text-purple-400",
	types.CategoryPersonal:     "bg-green-100 text-green-700 dark:bg-green-900/30 dark:text-green-400",
	types.CategoryOther:        "bg-gray-100 text-gray-700 dark:bg-gray-900/30 dark:text-gray-400",
}

// CategoryLabel returns the display label for a category. Lookup is
// case-sensitive; anything unmapped falls back to the "other" bucket.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return categoryLabels[types.CategoryOther]
}

// CategoryStyle returns the badge style token for a category, falling
// back to the "other" bucket for unmapped input
func CategoryStyle(category string) string {
	if style, ok := categoryStyles[category]; ok {
		return style
	}
	return categoryStyles[types.CategoryOther]
}

// FormatEmailDate renders the short list-row form, e.g. "01/02 15:04"
func FormatEmailDate(date interface{}) string {
	return formatDate(date, "01/02 15:04")
}

// FormatFullDate renders the long localized detail form,
// e.g. "2006年01月02日 15:04"
func FormatFullDate(date interface{}) string {
	return formatDate(date, "2006年01月02日 15:04")
}

// dateLayouts are tried in order when parsing a string date
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatDate accepts a time.Time, a unix-millisecond timestamp, or a
// string date. Unparseable strings are returned unchanged so the UI
// still shows something.
func formatDate(date interface{}, layout string) string {
	switch v := date.(type) {
	case time.Time:
		return v.Format(layout)
	case int64:
		return time.UnixMilli(v).Format(layout)
	case int:
		return time.UnixMilli(int64(v)).Format(layout)
	case float64:
		return time.UnixMilli(int64(v)).Format(layout)
	case string:
		for _, l := range dateLayouts {
			if t, err := time.Parse(l, v); err == nil {
				return t.Format(layout)
			}
		}
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
