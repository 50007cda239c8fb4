package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailQueryNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   EmailQuery
		want EmailQuery
	}{
		{"zero value gets defaults", EmailQuery{}, EmailQuery{Limit: DefaultEmailLimit}},
		{"negative limit gets the default", EmailQuery{Limit: -1}, EmailQuery{Limit: DefaultEmailLimit}},
		{"negative offset is clamped", EmailQuery{Limit: 10, Offset: -5}, EmailQuery{Limit: 10}},
		{"explicit values pass through", EmailQuery{Limit: 20, Offset: 40, ForceRefresh: true}, EmailQuery{Limit: 20, Offset: 40, ForceRefresh: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
