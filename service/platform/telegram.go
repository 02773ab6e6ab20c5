package platform

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/util"
	"github.com/pkg/errors"
)

// TelegramBot implements Messenger over the Telegram Bot API and drives
// the inbound long-poll loop. Webhook delivery would reuse the same
// event conversion; only Run differs.
type TelegramBot struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
}

func NewTelegramBot(token string) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "could not authorise bot token")
	}

	return &TelegramBot{
		api:        api,
		httpClient: http.DefaultClient,
	}, nil
}

// call runs one API request and honours ctx cancellation. The Bot API
// client has no context support of its own, so a timed out call is
// abandoned to finish in the background.
func (b *TelegramBot) call(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *TelegramBot) SendText(ctx context.Context, chat types.ChatID, text string) error {
	return b.call(ctx, func() error {
		msg := tgbotapi.NewMessage(int64(chat), text)
		_, err := b.api.Send(msg)
		return err
	})
}

func (b *TelegramBot) SendTextWithButtons(ctx context.Context, chat types.ChatID, text string, rows [][]Button) error {
	return b.call(ctx, func() error {
		msg := tgbotapi.NewMessage(int64(chat), text)
		msg.ReplyMarkup = buildKeyboard(rows)
		_, err := b.api.Send(msg)
		return err
	})
}

func (b *TelegramBot) SendDocument(ctx context.Context, chat types.ChatID, ref types.RemoteRef, caption string) error {
	return b.call(ctx, func() error {
		doc := tgbotapi.NewDocument(int64(chat), tgbotapi.FileID(string(ref)))
		doc.Caption = caption
		_, err := b.api.Send(doc)
		return err
	})
}

func (b *TelegramBot) CopyToChannel(ctx context.Context, channel int64, fromChat types.ChatID, messageID int) error {
	return b.call(ctx, func() error {
		_, err := b.api.CopyMessage(tgbotapi.NewCopyMessage(channel, int64(fromChat), messageID))
		return err
	})
}

func (b *TelegramBot) MemberStatus(ctx context.Context, channel types.ChannelID, user types.UserID) (types.MembershipStatus, error) {
	var member tgbotapi.ChatMember

	err := b.call(ctx, func() error {
		var callErr error
		member, callErr = b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
			ChatConfigWithUser: chatConfigFor(channel, user),
		})
		return callErr
	})
	if err != nil {
		return types.StatusUnknown, err
	}

	switch member.Status {
	case "creator", "administrator":
		return types.StatusAdministrator, nil
	case "member":
		return types.StatusMember, nil
	case "restricted":
		if member.IsMember {
			return types.StatusMember, nil
		}
		return types.StatusLeft, nil
	case "left":
		return types.StatusLeft, nil
	case "kicked":
		return types.StatusKicked, nil
	}

	return types.StatusUnknown, nil
}

func (b *TelegramBot) FetchFile(ctx context.Context, ref types.RemoteRef) (io.ReadCloser, error) {
	var fileURL string

	err := b.call(ctx, func() error {
		var callErr error
		fileURL, callErr = b.api.GetFileDirectURL(string(ref))
		return callErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve file url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch file contents")
	}
	if resp.StatusCode != http.StatusOK {
		util.CloseAndLogOnError(ctx, resp.Body)
		return nil, errors.Errorf("file fetch returned status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

func (b *TelegramBot) AcknowledgeCallback(ctx context.Context, callbackID string) error {
	return b.call(ctx, func() error {
		_, err := b.api.Request(tgbotapi.NewCallback(callbackID, ""))
		return err
	})
}

// Run converts long-poll updates into platform events and hands each to
// the dispatch function on its own goroutine. Blocks until ctx ends.
func (b *TelegramBot) Run(ctx context.Context, dispatch func(ctx context.Context, ev Event)) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)

	log := util.Log(ctx)
	log.WithField("bot", b.api.Self.UserName).Info("listening for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			ev, converted := convertUpdate(update)
			if !converted {
				continue
			}

			go func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithField("panic", r).Error("recovered panicking update handler")
					}
				}()
				dispatch(ctx, ev)
			}()
		}
	}
}

func convertUpdate(update tgbotapi.Update) (Event, bool) {
	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		ev := Event{
			Kind:         EventCallback,
			User:         types.UserID(cb.From.ID),
			FirstName:    cb.From.FirstName,
			CallbackID:   cb.ID,
			CallbackData: cb.Data,
		}
		if cb.Message != nil {
			ev.Chat = types.ChatID(cb.Message.Chat.ID)
		}
		return ev, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return Event{}, false
	}

	ev := Event{
		User:         types.UserID(msg.From.ID),
		FirstName:    msg.From.FirstName,
		Chat:         types.ChatID(msg.Chat.ID),
		MessageID:    msg.MessageID,
		MediaGroupID: msg.MediaGroupID,
	}

	if doc := documentOf(msg); doc != nil {
		ev.Kind = EventDocument
		ev.Document = doc
		return ev, true
	}

	if msg.IsCommand() {
		ev.Kind = EventCommand
		ev.Command = msg.Command()
		ev.Args = strings.TrimSpace(msg.CommandArguments())
		return ev, true
	}

	return Event{}, false
}

func documentOf(msg *tgbotapi.Message) *DocumentInfo {
	if msg.Document != nil {
		return &DocumentInfo{
			Ref:      types.RemoteRef(msg.Document.FileID),
			UniqueID: msg.Document.FileUniqueID,
			Name:     msg.Document.FileName,
			Size:     int64(msg.Document.FileSize),
			Mimetype: msg.Document.MimeType,
			IsImage:  strings.HasPrefix(msg.Document.MimeType, "image/"),
		}
	}

	if len(msg.Photo) > 0 {
		// Telegram delivers several resolutions; the last is largest.
		photo := msg.Photo[len(msg.Photo)-1]
		return &DocumentInfo{
			Ref:      types.RemoteRef(photo.FileID),
			UniqueID: photo.FileUniqueID,
			Name:     "photo_" + photo.FileUniqueID + ".jpg",
			Size:     int64(photo.FileSize),
			Mimetype: "image/jpeg",
			IsImage:  true,
		}
	}

	return nil
}

func buildKeyboard(rows [][]Button) tgbotapi.InlineKeyboardMarkup {
	keyboardRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			if button.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(button.Text, button.URL))
			} else {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.Data))
			}
		}
		keyboardRows = append(keyboardRows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboardRows...)
}

func chatConfigFor(channel types.ChannelID, user types.UserID) tgbotapi.ChatConfigWithUser {
	cfg := tgbotapi.ChatConfigWithUser{UserID: int64(user)}

	raw := string(channel)
	if strings.HasPrefix(raw, "@") {
		cfg.SuperGroupUsername = raw
		return cfg
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Malformed channel id: leave the config empty so the API
		// call fails and the verifier classifies it Unknown.
		cfg.SuperGroupUsername = raw
		return cfg
	}
	cfg.ChatID = id
	return cfg
}
