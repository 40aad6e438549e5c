package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plinian/pipeline/pkg/utils"
)

func TestEncodeMessage(t *testing.T) {
	message := encodeMessage(Draft{
		To:      "jordan@meridian.com",
		Subject: "StoneRiver Fund IV",
		Body:    "Hi Jordan,\n\nQuick note.",
	})

	assert.Contains(t, message, "To: jordan@meridian.com\r\n")
	assert.Contains(t, message, "Subject: StoneRiver Fund IV\r\n")
	assert.Contains(t, message, "charset=\"UTF-8\"")
	assert.Contains(t, message, "\r\n\r\nHi Jordan,")
}

func TestNewGmailServiceRequiresCredentials(t *testing.T) {
	_, err := NewGmailService(context.Background(), utils.NewConfig(nil))
	assert.Error(t, err)
}

func TestDisabledService(t *testing.T) {
	_, err := Disabled{}.CreateDraft(context.Background(), Draft{To: "a@b.com"})
	assert.Error(t, err)
}
