package testutil

import "fmt"

// Canned envelope bodies in the shape the Bot API returns them.

// EnvelopeOK wraps result JSON in a success envelope.
func EnvelopeOK(resultJSON string) string {
	return `{"ok":true,"result":` + resultJSON + `}`
}

// EnvelopeError builds an error envelope.
func EnvelopeError(code int, description string) string {
	return fmt.Sprintf(`{"ok":false,"error_code":%d,"description":%q}`, code, description)
}

// EnvelopeRateLimit builds a 429 envelope carrying retry_after.
func EnvelopeRateLimit(retryAfter int) string {
	return fmt.Sprintf(
		`{"ok":false,"error_code":429,"description":"Too Many Requests: retry after %d","parameters":{"retry_after":%d}}`,
		retryAfter, retryAfter)
}

// UserJSON is a canned getMe result.
const UserJSON = `{"id":42,"is_bot":true,"first_name":"x","username":"x"}`

// MessageJSON builds a canned sendMessage result.
func MessageJSON(messageID int, chatID int64, text string) string {
	return fmt.Sprintf(
		`{"message_id":%d,"date":1234567890,"chat":{"id":%d,"type":"private"},"text":%q}`,
		messageID, chatID, text)
}

// UpdateJSON builds a canned update carrying a text message.
func UpdateJSON(updateID int64, text string) string {
	return fmt.Sprintf(`{"update_id":%d,"message":%s}`, updateID, MessageJSON(1, TestChatID, text))
}

// UpdatesJSON builds a canned getUpdates result from individual updates.
func UpdatesJSON(updates ...string) string {
	out := "["
	for i, u := range updates {
		if i > 0 {
			out += ","
		}
		out += u
	}
	return out + "]"
}
