package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/agent"
)

const pollTimeout = 25 // seconds, long-poll window for getUpdates

// Bot answers risk queries over the Telegram Bot API. Plain HTTP long
// polling, no webhook setup required.
type Bot struct {
	token  string
	agent  *agent.Agent
	client *http.Client
	offset int64
}

func NewBot(token string, a *agent.Agent) *Bot {
	return &Bot{
		token: token,
		agent: a,
		// Must outlast the long-poll window.
		client: &http.Client{Timeout: (pollTimeout + 10) * time.Second},
	}
}

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From struct {
			Username string `json:"username"`
		} `json:"from"`
	} `json:"message"`
}

func (b *Bot) Run(ctx context.Context) error {
	log.Info().Msg("📨 telegram bot started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		updates, err := b.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Msg("getUpdates failed, backing off")
			time.Sleep(5 * time.Second)
			continue
		}

		for _, u := range updates {
			b.offset = u.UpdateID + 1
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, u)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, u update) {
	text := strings.TrimSpace(u.Message.Text)
	log.Debug().Str("from", u.Message.From.Username).Str("text", text).Msg("telegram message")

	var reply string
	switch {
	case strings.HasPrefix(text, "/start"), strings.HasPrefix(text, "/help"):
		reply = "I'm ChainWatchdog. Send me a wallet or token address and I'll check it for spam and honeypot risk.\n\n" +
			"Examples:\n" +
			"  check wallet 0x1234...\n" +
			"  is 0xabcd... a honeypot on bsc\n" +
			"  check token EPjF... for spam"
	default:
		reply = b.agent.Respond(ctx, text)
	}

	if err := b.sendMessage(ctx, u.Message.Chat.ID, reply); err != nil {
		log.Warn().Err(err).Int64("chat", u.Message.Chat.ID).Msg("sendMessage failed")
	}
}

func (b *Bot) getUpdates(ctx context.Context) ([]update, error) {
	q := url.Values{}
	q.Set("timeout", strconv.Itoa(pollTimeout))
	if b.offset > 0 {
		q.Set("offset", strconv.FormatInt(b.offset, 10))
	}

	var resp struct {
		OK          bool     `json:"ok"`
		Description string   `json:"description"`
		Result      []update `json:"result"`
	}
	if err := b.call(ctx, "getUpdates", q, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("telegram: %s", resp.Description)
	}
	return resp.Result, nil
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) error {
	q := url.Values{}
	q.Set("chat_id", strconv.FormatInt(chatID, 10))
	q.Set("text", text)

	var resp struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := b.call(ctx, "sendMessage", q, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("telegram: %s", resp.Description)
	}
	return nil
}

func (b *Bot) call(ctx context.Context, method string, q url.Values, out interface{}) error {
	u := fmt.Sprintf("https://api.telegram.org/bot%s/%s", b.token, method)

	req, err := http.NewRequestWithContext(ctx, "POST", u, strings.NewReader(q.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
