// Package notify delivers short operator notices to a Telegram chat.
package notify

import (
	"context"
	"fmt"
	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"log/slog"
	"strings"
	"unicode/utf8"
	"zylumine/lib/sl"
)

// Telegram messages are limited to 4096 characters.
const maxMessageLen = 4096

type Telegram struct {
	log    *slog.Logger
	chatID int64
	send   func(chatID int64, text string) error
}

func NewTelegram(apiKey string, chatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	return &Telegram{
		log:    log.With(sl.Module("notify.telegram")),
		chatID: chatID,
		send: func(chatID int64, text string) error {
			_, err := api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{})
			return err
		},
	}, nil
}

// Send posts plain text to the operator chat, split on line breaks when it is too long.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	for _, part := range splitMessage(text, maxMessageLen) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.send(t.chatID, part); err != nil {
			t.log.With(slog.Int64("chat_id", t.chatID)).Warn("sending message", sl.Err(err))
			return err
		}
	}
	return nil
}

func splitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}
	var parts []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			parts = append(parts, text)
			break
		}
		// prefer a line break as the cut point
		cutAt := maxLen
		nlIdx := strings.LastIndex(text[:maxLen], "\n")
		if nlIdx > 0 {
			cutAt = nlIdx + 1
		} else {
			for cutAt > 0 && !utf8.RuneStart(text[cutAt]) {
				cutAt--
			}
			if cutAt == 0 {
				cutAt = maxLen
			}
		}
		parts = append(parts, text[:cutAt])
		text = text[cutAt:]
	}
	return parts
}
