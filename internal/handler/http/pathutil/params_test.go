package pathutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notify-svc/internal/domain/entity"
)

func TestHandlerType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/settings/email", nil)
	req.SetPathValue("type", "email")
	got, ok := HandlerType(req)
	assert.True(t, ok)
	assert.Equal(t, entity.HandlerTypeEmail, got)

	req.SetPathValue("type", "sms")
	_, ok = HandlerType(req)
	assert.False(t, ok)
}

func TestTimeRange(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		from    *int64
		to      *int64
		wantErr bool
	}{
		{name: "none", query: ""},
		{name: "from only", query: "fromTime=20", from: ptr(20)},
		{name: "both", query: "fromTime=20&toTime=35", from: ptr(20), to: ptr(35)},
		{name: "negative", query: "toTime=-5", to: ptr(-5)},
		{name: "non integer from", query: "fromTime=yesterday", wantErr: true},
		{name: "non integer to", query: "toTime=1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/notifications?"+tt.query, nil)
			got, err := TimeRange(req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, entity.KindBadRequest, entity.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.from, got.From)
			assert.Equal(t, tt.to, got.To)
		})
	}
}

func ptr(v int64) *int64 { return &v }
