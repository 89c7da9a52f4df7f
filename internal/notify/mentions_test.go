package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractMentions(t *testing.T) {
	tt := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "none",
			content: "no mentions here",
			want:    []string{},
		},
		{
			name:    "single",
			content: "thanks @maya!",
			want:    []string{"maya"},
		},
		{
			name:    "dedup is case-insensitive, first spelling wins",
			content: "@Maya meet @MAYA and @maya",
			want:    []string{"Maya"},
		},
		{
			name:    "order preserved",
			content: "@zoe then @abe then @zoe",
			want:    []string{"zoe", "abe"},
		},
		{
			name:    "underscores and digits",
			content: "ping @street_art_99",
			want:    []string{"street_art_99"},
		},
		{
			name:    "bare at sign",
			content: "me @ the beach",
			want:    []string{},
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ExtractMentions(tc.content))
		})
	}
}
