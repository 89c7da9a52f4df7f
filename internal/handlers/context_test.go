package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/connectsphere/backend/internal/services"
)

func listContext(t *testing.T, query string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts?"+query, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestListOptions(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  services.ListOptions
	}{
		{
			name:  "defaults",
			query: "",
			want:  services.ListOptions{},
		},
		{
			name:  "cursor and limit",
			query: "cursor=2026-01-02T15%3A04%3A05Z&limit=10",
			want:  services.ListOptions{Cursor: "2026-01-02T15:04:05Z", Limit: 10},
		},
		{
			name:  "owner filter",
			query: "user_id=7",
			want:  services.ListOptions{OwnerID: intPtr(7)},
		},
		{
			name:  "exclude owner filter",
			query: "exclude_user_id=3",
			want:  services.ListOptions{ExcludeOwnerID: intPtr(3)},
		},
		{
			name:  "non-numeric ids ignored",
			query: "user_id=abc&exclude_user_id=-1",
			want:  services.ListOptions{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, listOptions(listContext(t, tc.query)))
		})
	}
}

func intPtr(v int) *int { return &v }
