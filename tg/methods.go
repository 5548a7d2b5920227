package tg

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/prilive-com/tgwire/wire"
)

// The request types below form a working subset of the Bot API method catalog.
// Each serializes itself into a wire.Request and deserializes its own result
// type; together the two methods satisfy the facade's Request[T] capability.

// GetMe requests basic information about the bot.
type GetMe struct{}

// Serialize produces the wire request for getMe.
func (GetMe) Serialize() (*wire.Request, error) {
	return wire.NewGet("getMe"), nil
}

// Deserialize parses the getMe result.
func (GetMe) Deserialize(resp *wire.Response) (User, error) {
	return DecodeResult[User](resp)
}

// GetUpdates polls for incoming updates via long polling.
type GetUpdates struct {
	Offset         int64
	Limit          int
	Timeout        int // long poll duration in seconds
	AllowedUpdates []string
}

// Serialize produces the wire request for getUpdates.
func (r GetUpdates) Serialize() (*wire.Request, error) {
	form := wire.Form{
		"offset":  strconv.FormatInt(r.Offset, 10),
		"timeout": strconv.Itoa(r.Timeout),
	}
	if r.Limit > 0 {
		form["limit"] = strconv.Itoa(r.Limit)
	}
	if len(r.AllowedUpdates) > 0 {
		encoded, err := json.Marshal(r.AllowedUpdates)
		if err != nil {
			return nil, fmt.Errorf("allowed_updates: %w", err)
		}
		form["allowed_updates"] = string(encoded)
	}
	return wire.NewForm("getUpdates", form), nil
}

// Deserialize parses the getUpdates result.
func (GetUpdates) Deserialize(resp *wire.Response) ([]Update, error) {
	return DecodeResult[[]Update](resp)
}

// SendMessage sends a text message.
type SendMessage struct {
	ChatID              ChatID
	Text                string
	ParseMode           string
	DisableNotification bool
	ReplyToMessageID    int
}

// Serialize produces the wire request for sendMessage.
func (r SendMessage) Serialize() (*wire.Request, error) {
	chatID, err := encodeChatID(r.ChatID)
	if err != nil {
		return nil, err
	}
	if r.Text == "" {
		return nil, errors.New("sendMessage: text must not be empty")
	}
	form := wire.Form{
		"chat_id": chatID,
		"text":    r.Text,
	}
	if r.ParseMode != "" {
		form["parse_mode"] = r.ParseMode
	}
	if r.DisableNotification {
		form["disable_notification"] = "true"
	}
	if r.ReplyToMessageID != 0 {
		form["reply_to_message_id"] = strconv.Itoa(r.ReplyToMessageID)
	}
	return wire.NewForm("sendMessage", form), nil
}

// Deserialize parses the sent message.
func (SendMessage) Deserialize(resp *wire.Response) (Message, error) {
	return DecodeResult[Message](resp)
}

// SendDocument sends a general file. File content given by Reader is streamed
// as a multipart upload; file_id and URL references go as plain fields.
type SendDocument struct {
	ChatID              ChatID
	Document            InputFile
	Caption             string
	DisableNotification bool
}

// Serialize produces the wire request for sendDocument.
func (r SendDocument) Serialize() (*wire.Request, error) {
	chatID, err := encodeChatID(r.ChatID)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{"chat_id": chatID}
	if r.Caption != "" {
		fields["caption"] = r.Caption
	}
	if r.DisableNotification {
		fields["disable_notification"] = "true"
	}

	mp := &wire.Multipart{Fields: fields}
	switch {
	case r.Document.FileID != "":
		mp.Fields["document"] = r.Document.FileID
	case r.Document.URL != "":
		mp.Fields["document"] = r.Document.URL
	case r.Document.Reader != nil:
		mp.Parts = append(mp.Parts, wire.Part{
			Field:    "document",
			FileName: r.Document.FileName,
			Reader:   r.Document.Reader,
		})
	default:
		return nil, errors.New("sendDocument: document must have FileID, URL, or Reader set")
	}

	return wire.NewMultipart("sendDocument", mp), nil
}

// Deserialize parses the sent message.
func (SendDocument) Deserialize(resp *wire.Response) (Message, error) {
	return DecodeResult[Message](resp)
}

// DeleteWebhook removes a webhook integration so getUpdates polling works.
type DeleteWebhook struct {
	DropPendingUpdates bool
}

// Serialize produces the wire request for deleteWebhook.
func (r DeleteWebhook) Serialize() (*wire.Request, error) {
	return wire.NewForm("deleteWebhook", wire.Form{
		"drop_pending_updates": strconv.FormatBool(r.DropPendingUpdates),
	}), nil
}

// Deserialize parses the deleteWebhook result.
func (DeleteWebhook) Deserialize(resp *wire.Response) (bool, error) {
	return DecodeResult[bool](resp)
}

func encodeChatID(id ChatID) (string, error) {
	switch v := id.(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case int:
		return strconv.Itoa(v), nil
	case string:
		if v == "" {
			return "", errors.New("chat_id must not be empty")
		}
		return v, nil
	case nil:
		return "", errors.New("chat_id is required")
	default:
		return "", fmt.Errorf("unsupported chat_id type %T", id)
	}
}
