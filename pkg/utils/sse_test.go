package utils

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendSSEEventFormatsFrame(t *testing.T) {
	rec := httptest.NewRecorder()
	SetupSSEHeaders(rec)
	SendSSEEvent(rec, rec, "busy", map[string]bool{"busy": true})

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "event: busy\ndata: {\"busy\":true}\n\n", rec.Body.String())
	assert.True(t, rec.Flushed)
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"a"} {"text":"b"}`))
	var payload struct {
		Text string `json:"text"`
	}
	assert.Error(t, DecodeJSON(req, &payload))
}
