package tg

import "io"

// ChatID identifies a chat. Valid types: int64 (numeric ID) or string
// (channel username like "@channelusername").
type ChatID = any

// User represents a Telegram user or bot.
type User struct {
	ID                    int64  `json:"id"`
	IsBot                 bool   `json:"is_bot"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name,omitempty"`
	Username              string `json:"username,omitempty"`
	LanguageCode          string `json:"language_code,omitempty"`
	CanJoinGroups         bool   `json:"can_join_groups,omitempty"`
	CanReadAllGroupMsgs   bool   `json:"can_read_all_group_messages,omitempty"`
	SupportsInlineQueries bool   `json:"supports_inline_queries,omitempty"`
}

// Chat represents a chat.
type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// MessageEntity represents one special entity in a message text.
type MessageEntity struct {
	Type     string `json:"type"`
	Offset   int    `json:"offset"`
	Length   int    `json:"length"`
	URL      string `json:"url,omitempty"`
	User     *User  `json:"user,omitempty"`
	Language string `json:"language,omitempty"`
}

// Message represents a message.
type Message struct {
	MessageID       int             `json:"message_id"`
	From            *User           `json:"from,omitempty"`
	Date            int64           `json:"date"`
	Chat            *Chat           `json:"chat"`
	ReplyToMessage  *Message        `json:"reply_to_message,omitempty"`
	EditDate        int64           `json:"edit_date,omitempty"`
	Text            string          `json:"text,omitempty"`
	Entities        []MessageEntity `json:"entities,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	Document        *Document       `json:"document,omitempty"`
}

// Document represents a general file.
type Document struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	FileName     string `json:"file_name,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
}

// InputFile references a file to send: an existing file_id, a public URL, or
// content streamed from a Reader. Exactly one of the three must be set.
type InputFile struct {
	FileID   string
	URL      string
	FileName string
	Reader   io.Reader
}

// IsUpload reports whether the file content is streamed from a Reader
// (as opposed to referenced by file_id or URL).
func (f InputFile) IsUpload() bool {
	return f.Reader != nil
}
