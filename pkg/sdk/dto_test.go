package sdk

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFirmRequestUnwrap(t *testing.T) {
	payload := `{
		"data": {
			"id": "page-123",
			"properties": {
				"Firm Name": {"title": [{"plain_text": "Meridian Capital"}]},
				"Website": {"url": "https://meridian.com"},
				"Restart Enrichment": {"checkbox": true}
			}
		}
	}`

	var req NewFirmRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	inner := req.Unwrap()
	assert.Equal(t, "page-123", inner.ID)
	assert.Equal(t, "Meridian Capital", inner.FirmName("Firm Name"))
	assert.Equal(t, "https://meridian.com", inner.Website("Website"))
	assert.True(t, inner.Checkbox("Restart Enrichment"))
}

func TestNewFirmRequestFlat(t *testing.T) {
	payload := `{
		"id": "page-456",
		"properties": {
			"Firm Name": {"plain_text": "Acme Capital"},
			"Website": {"url": "https://acme.com"}
		}
	}`

	var req NewFirmRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	inner := req.Unwrap()
	assert.Same(t, &req, inner, "flat payloads unwrap to themselves")
	assert.Equal(t, "Acme Capital", inner.FirmName("Firm Name"))
	assert.False(t, inner.Checkbox("Restart Enrichment"))
	assert.Empty(t, inner.FirmName("Missing Column"))
}

func TestApiResponse(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		resp := NewSuccessResponse("done", map[string]string{"k": "v"})

		code, body := resp.AsGinResponse()
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, resp, body)

		encoded, err := resp.AsJSON()
		require.NoError(t, err)
		assert.Contains(t, encoded, `"status":"success"`)
	})

	t.Run("error envelope", func(t *testing.T) {
		resp := NewErrorResponse(http.StatusBadGateway, "upstream down", "timeout")

		code, _ := resp.AsGinResponse()
		assert.Equal(t, http.StatusBadGateway, code)
		assert.Equal(t, StatusError, resp.Status)
	})
}
