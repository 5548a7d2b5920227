package testutil

import "github.com/prilive-com/tgwire/tg"

// Test constants for consistent test data.
const (
	// TestToken is a valid-format bot token for testing.
	TestToken = "123456789:ABCdefGHIjklMNOpqrsTUVwxyz"

	// TestChatID is a test chat ID.
	TestChatID = int64(123456789)

	// TestBotID is the bot ID inside UserJSON.
	TestBotID = int64(42)
)

// TestUser returns the user UserJSON deserializes to.
func TestUser() tg.User {
	return tg.User{
		ID:        TestBotID,
		IsBot:     true,
		FirstName: "x",
		Username:  "x",
	}
}

// TestUpdate returns an update fixture with a text message.
func TestUpdate(updateID int64, text string) tg.Update {
	return tg.Update{
		UpdateID: updateID,
		Message: &tg.Message{
			MessageID: 1,
			Date:      1234567890,
			Chat:      &tg.Chat{ID: TestChatID, Type: "private"},
			Text:      text,
		},
	}
}
