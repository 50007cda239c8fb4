package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/XIYBHK/MailFlow/pkg/types"
)

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
	}{
		{"spam", types.CategorySpam, "垃圾"},
		{"ads", types.CategoryAds, "广告"},
		{"subscription", types.CategorySubscription, "订阅"},
		{"work", types.CategoryWork, "工作"},
		{"personal", types.CategoryPersonal, "个人"},
		{"other", types.CategoryOther, "其他"},
		{"unknown falls back to other", "newsletter", "其他"},
		{"lookup is case-sensitive", "Work", "其他"},
		{"empty falls back to other", "", "其他"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryLabel(tt.category))
		})
	}
}

func TestCategoryStyle(t *testing.T) {
	assert.Contains(t, CategoryStyle(types.CategorySpam), "bg-red-100")
	assert.Contains(t, CategoryStyle(types.CategoryWork), "bg-purple-100")
	assert.Equal(t, CategoryStyle(types.CategoryOther), CategoryStyle("bogus"))
}

func TestFormatEmailDate(t *testing.T) {
	ref := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date interface{}
		want string
	}{
		{"time value", ref, "03/15 09:30"},
		{"rfc3339 string", "2026-03-15T09:30:00Z", "03/15 09:30"},
		{"datetime without zone", "2026-03-15T09:30:00", "03/15 09:30"},
		{"space-separated datetime", "2026-03-15 09:30:00", "03/15 09:30"},
		{"date only", "2026-03-15", "03/15 00:00"},
		{"unparseable string passes through", "昨天", "昨天"},
		{"nil renders empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEmailDate(tt.date))
		})
	}
}

func TestFormatEmailDateFromMillis(t *testing.T) {
	ref := time.Date(2026, 3, 15, 9, 30, 0, 0, time.Local)
	millis := ref.UnixMilli()

	assert.Equal(t, "03/15 09:30", FormatEmailDate(millis))
	assert.Equal(t, "03/15 09:30", FormatEmailDate(float64(millis)))
}

func TestFormatFullDate(t *testing.T) {
	ref := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026年03月15日 09:30", FormatFullDate(ref))
	assert.Equal(t, "2026年03月15日 09:30", FormatFullDate("2026-03-15T09:30:00Z"))
}

func TestDefaultFolders(t *testing.T) {
	assert.Equal(t, []string{"INBOX", "草稿箱", "已发送", "垃圾邮件", "已删除"}, DefaultFolders)
}
