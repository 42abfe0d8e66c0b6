package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	gmailapi "google.golang.org/api/gmail/v1"
)

func textPart(body string) *gmailapi.MessagePart {
	return &gmailapi.MessagePart{
		MimeType: "text/plain",
		Body:     &gmailapi.MessagePartBody{Data: body},
	}
}

func TestExtractBody(t *testing.T) {
	const reply = "Yes, let's set up a meeting."

	t.Run("unpadded base64url", func(t *testing.T) {
		data := base64.RawURLEncoding.EncodeToString([]byte(reply))
		assert.Equal(t, reply, extractBody(textPart(data)))
	})

	t.Run("padded base64url", func(t *testing.T) {
		data := base64.URLEncoding.EncodeToString([]byte(reply))
		assert.Equal(t, reply, extractBody(textPart(data)))
	})

	t.Run("nested multipart", func(t *testing.T) {
		data := base64.RawURLEncoding.EncodeToString([]byte(reply))
		payload := &gmailapi.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmailapi.MessagePart{
				{MimeType: "text/html", Body: &gmailapi.MessagePartBody{Data: "PGI-"}},
				textPart(data),
			},
		}
		assert.Equal(t, reply, extractBody(payload))
	})

	t.Run("garbage data", func(t *testing.T) {
		assert.Empty(t, extractBody(textPart("not base64!")))
	})
}

func TestExtractEmailAddress(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Joe Diner <joe@example.com>", "joe@example.com"},
		{"<joe@example.com>", "joe@example.com"},
		{"joe@example.com", "joe@example.com"},
		{"  joe@example.com  ", "joe@example.com"},
		{`"Diner, Joe" <joe@example.com>`, "joe@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractEmailAddress(tc.in))
		})
	}
}
