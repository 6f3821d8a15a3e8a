package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type topicPayload struct {
	Topic string `json:"topic" validate:"required,max=10"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    topicPayload
		wantErr bool
	}{
		{name: "valid", body: `{"topic":"Cells"}`, want: topicPayload{Topic: "Cells"}},
		{name: "malformed", body: `{"topic":`, wantErr: true},
		{name: "unknown field", body: `{"topic":"Cells","extra":1}`, wantErr: true},
		{name: "trailing data", body: `{"topic":"Cells"}{"topic":"Again"}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/api/flashcards", strings.NewReader(tc.body))
			var got topicPayload
			err := DecodeJSON(req, &got)

			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return assert.AnError
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(topicPayload{Topic: "Cells"}))
	assert.Error(t, ValidateRequest(topicPayload{}))
	assert.Error(t, ValidateRequest(topicPayload{Topic: "far too long a topic"}))

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.ErrorIs(t, ValidateRequest(selfValidating{}), assert.AnError)
}
