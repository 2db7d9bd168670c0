package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notify-svc/internal/domain/entity"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{"map", http.StatusOK, map[string]string{"message": "success"}, `{"message":"success"}`},
		{"slice", http.StatusOK, []int{}, `[]`},
		{"nil", http.StatusOK, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedBody, strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, make(chan int))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	Empty(w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		typ    string
		msg    string
	}{
		{"missing attribute", entity.MissingAttribute("Required attributes: title and content"), 400, "MISSING_ATTRIBUTE", "Required attributes: title and content"},
		{"not found", entity.NotFound("no such topic alerts"), 404, "NOT_FOUND", "no such topic alerts"},
		{"unavailable", entity.Unavailable("no handler for topic"), 503, "UNAVAILABLE", "no handler for topic"},
		{"authentication", entity.AuthenticationFailure("Failed to authenticate with SMTP server", nil), 403, "AUTHENTICATION_ERROR", "Failed to authenticate with SMTP server"},
		{"internal keeps its message", entity.Internal("failed to send notification", errors.New("dial tcp")), 500, "INTERNAL_ERROR", "failed to send notification"},
		{"plain error is hidden", errors.New("postgres://user:secret@db"), 500, "UNKNOWN_ERROR", "Oops, ... Something went wrong!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/x", nil)
			Error(w, r, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.typ, body["type"])
			assert.Equal(t, tt.msg, body["msg"])
			assert.NotEmpty(t, body["time"])
		})
	}
}

func TestError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, nil, nil)
	assert.Zero(t, w.Body.Len())
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"object", `{"title":"t"}`, true},
		{"empty", ``, false},
		{"null", `null`, false},
		{"garbage", `{title`, false},
		{"wrong shape", `[1,2]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v struct {
				Title string `json:"title"`
			}
			err := DecodeJSON(r, &v)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, "t", v.Title)
				return
			}
			assert.Equal(t, entity.KindBadRequest, entity.KindOf(err))
			assert.Contains(t, err.Error(), MsgNotJSON)
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"`+strings.Repeat("x", 100)+`"}`))
	r.Body = http.MaxBytesReader(w, r.Body, 16)

	var v map[string]any
	err := DecodeJSON(r, &v)
	assert.Equal(t, entity.KindBadRequest, entity.KindOf(err))
	assert.Contains(t, err.Error(), "exceeds 16 bytes")
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), MsgEndpointNotFound)
}
