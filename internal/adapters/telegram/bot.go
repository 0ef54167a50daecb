// Package telegram connects the router to the Telegram Bot API
package telegram

import (
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cinebot/internal/platform/config"
	perr "cinebot/internal/platform/errors"
	"cinebot/internal/platform/logger"
	"cinebot/internal/services/bot/domain"
	disdomain "cinebot/internal/services/disclosure/domain"
)

// Options configures the Bot
type Options struct {
	Token string
	// Endpoint is a format string taking the token and the method
	Endpoint string
	// PollTimeout is the long poll duration in seconds
	PollTimeout int
	// Timeout is added on top of PollTimeout for the http client
	Timeout time.Duration
	Debug   bool
}

// OptionsFromConfig reads TELEGRAM_* settings, the token is required
func OptionsFromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("TELEGRAM_")
	return Options{
		Token:       c.MustString("TOKEN"),
		Endpoint:    c.MayString("ENDPOINT", tgbotapi.APIEndpoint),
		PollTimeout: c.MayInt("POLL_TIMEOUT", 60),
		Timeout:     c.MayDuration("TIMEOUT", 10*time.Second),
		Debug:       c.MayBool("DEBUG", false),
	}
}

// Bot is the Telegram side of the router
type Bot struct {
	api  *tgbotapi.BotAPI
	opts Options
	log  logger.Logger
}

var _ domain.Transport = (*Bot)(nil)

// New authenticates against the api with getMe
func New(o Options) (*Bot, error) {
	if o.Endpoint == "" {
		o.Endpoint = tgbotapi.APIEndpoint
	}
	if o.PollTimeout <= 0 {
		o.PollTimeout = 60
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	client := &http.Client{Timeout: time.Duration(o.PollTimeout)*time.Second + o.Timeout}
	api, err := tgbotapi.NewBotAPIWithClient(o.Token, o.Endpoint, client)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "telegram connect failed")
	}
	api.Debug = o.Debug
	b := &Bot{api: api, opts: o, log: *logger.Named("telegram")}
	b.log.Info().Str("username", api.Self.UserName).Msg("telegram authorized")
	return b, nil
}

// Username is the bot account name
func (b *Bot) Username() string { return b.api.Self.UserName }

// Events long polls for updates and emits router events until ctx is done
func (b *Bot) Events(ctx context.Context) <-chan domain.Event {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.opts.PollTimeout
	updates := b.api.GetUpdatesChan(u)

	out := make(chan domain.Event)
	go func() {
		defer close(out)
		defer b.api.StopReceivingUpdates()
		for {
			select {
			case <-ctx.Done():
				return
			case up, ok := <-updates:
				if !ok {
					return
				}
				ev, ok := toEvent(up)
				if !ok {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// toEvent keeps messages with a sender and callback queries, everything else is dropped
func toEvent(up tgbotapi.Update) (domain.Event, bool) {
	if cq := up.CallbackQuery; cq != nil {
		ev := domain.Event{Kind: domain.EventInteraction, CallbackID: cq.ID, Data: cq.Data}
		if cq.From != nil {
			ev.UserID = cq.From.ID
		}
		if cq.Message != nil {
			ev.MessageID = cq.Message.MessageID
			if cq.Message.Chat != nil {
				ev.ChatID = cq.Message.Chat.ID
			}
		}
		return ev, true
	}

	m := up.Message
	if m == nil || m.From == nil || m.Chat == nil {
		return domain.Event{}, false
	}
	ev := domain.Event{ChatID: m.Chat.ID, UserID: m.From.ID, MessageID: m.MessageID}
	switch {
	case m.IsCommand():
		ev.Kind, ev.Command, ev.Text = domain.EventCommand, m.Command(), m.CommandArguments()
	case m.Text != "":
		ev.Kind, ev.Text = domain.EventText, m.Text
	default:
		return domain.Event{}, false
	}
	return ev, true
}

// Reply posts plain text
func (b *Bot) Reply(ctx context.Context, chatID int64, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, wrap(err, "sendMessage")
	}
	return m.MessageID, nil
}

// Show posts a view as a photo with its caption and controls
func (b *Bot) Show(ctx context.Context, chatID int64, v disdomain.View) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(poster(v)))
	photo.Caption = Caption(v)
	if kb, ok := Keyboard(v.Controls); ok {
		photo.ReplyMarkup = kb
	}
	m, err := b.api.Send(photo)
	if err != nil {
		return 0, wrap(err, "sendPhoto")
	}
	return m.MessageID, nil
}

// Replace swaps the caption and controls of a posted view
func (b *Bot) Replace(ctx context.Context, chatID int64, messageID int, v disdomain.View) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	edit := tgbotapi.NewEditMessageCaption(chatID, messageID, Caption(v))
	if kb, ok := Keyboard(v.Controls); ok {
		edit.ReplyMarkup = &kb
	}
	if _, err := b.api.Request(edit); err != nil {
		return wrap(err, "editMessageCaption")
	}
	return nil
}

// Delete removes a message
func (b *Bot) Delete(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return wrap(err, "deleteMessage")
	}
	return nil
}

// Notify answers a callback query, an empty text only stops the spinner
func (b *Bot) Notify(ctx context.Context, callbackID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return wrap(err, "answerCallbackQuery")
	}
	return nil
}

func wrap(err error, method string) error {
	return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeUnavailable, "telegram %s failed", method), "telegram."+method)
}
