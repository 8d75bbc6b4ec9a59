package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID    string
	text      string
	parseMode string
}

// fakeAPI serves just enough of the Telegram Bot API for the client.
func fakeAPI(t *testing.T) (*tgbotapi.BotAPI, *[]sentMessage) {
	t.Helper()

	var sent []sentMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/bottest-token/getMe":
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"traffic","username":"trafficbot"}}`))
		case "/bottest-token/sendMessage":
			sent = append(sent, sentMessage{
				chatID:    r.Form.Get("chat_id"),
				text:      r.Form.Get("text"),
				parseMode: r.Form.Get("parse_mode"),
			})
			w.Write([]byte(`{"ok":true,"result":{"message_id":1,"chat":{"id":1},"date":1,"text":"x"}}`))
		default:
			t.Fatalf("unexpected API call: %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", srv.URL+"/bot%s/%s")
	require.NoError(t, err)
	return api, &sent
}

type fakeHandler struct {
	requests []int64
}

func (h *fakeHandler) HandleReportRequest(_ context.Context, requester int64) {
	h.requests = append(h.requests, requester)
}

func commandUpdate(chatID int64, command string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			From:      &tgbotapi.User{ID: chatID},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      command,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(command)},
			},
		},
	}
}

func TestDeliver(t *testing.T) {
	api, sent := fakeAPI(t)
	bot := newBot(api, []int64{1001}, zerolog.Nop())

	err := bot.Deliver(context.Background(), 1001, "*report*")
	require.NoError(t, err)

	require.Len(t, *sent, 1)
	assert.Equal(t, "1001", (*sent)[0].chatID)
	assert.Equal(t, "*report*", (*sent)[0].text)
	assert.Equal(t, "Markdown", (*sent)[0].parseMode)
}

func TestDeliver_CancelledContext(t *testing.T) {
	api, sent := fakeAPI(t)
	bot := newBot(api, []int64{1001}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bot.Deliver(ctx, 1001, "text")
	require.Error(t, err)
	assert.Empty(t, *sent)
}

func TestAuthorize(t *testing.T) {
	api, _ := fakeAPI(t)
	bot := newBot(api, []int64{1001, 1002}, zerolog.Nop())

	assert.True(t, bot.Authorize(1001))
	assert.True(t, bot.Authorize(1002))
	assert.False(t, bot.Authorize(9999))
}

func TestHandleUpdate_TrafficCommand(t *testing.T) {
	api, sent := fakeAPI(t)
	bot := newBot(api, []int64{1001}, zerolog.Nop())
	handler := &fakeHandler{}

	bot.handleUpdate(context.Background(), commandUpdate(1001, "/traffic"), handler)

	assert.Equal(t, []int64{1001}, handler.requests)
	require.Len(t, *sent, 1)
	assert.Equal(t, ackMsg, (*sent)[0].text)
}

func TestHandleUpdate_StartCommand(t *testing.T) {
	api, sent := fakeAPI(t)
	bot := newBot(api, []int64{1001}, zerolog.Nop())
	handler := &fakeHandler{}

	bot.handleUpdate(context.Background(), commandUpdate(1001, "/start"), handler)

	assert.Empty(t, handler.requests)
	require.Len(t, *sent, 1)
	assert.Equal(t, greetingMsg, (*sent)[0].text)
}

func TestHandleUpdate_Unauthorized(t *testing.T) {
	api, sent := fakeAPI(t)
	bot := newBot(api, []int64{1001}, zerolog.Nop())
	handler := &fakeHandler{}

	bot.handleUpdate(context.Background(), commandUpdate(9999, "/traffic"), handler)

	assert.Empty(t, handler.requests, "no report for unauthorized chats")
	require.Len(t, *sent, 1)
	assert.Equal(t, unauthorizedMsg, (*sent)[0].text)
}

func TestHandleUpdate_IgnoresPlainMessages(t *testing.T) {
	api, sent := fakeAPI(t)
	bot := newBot(api, []int64{1001}, zerolog.Nop())
	handler := &fakeHandler{}

	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			Chat:      &tgbotapi.Chat{ID: 1001},
			Text:      "hello",
		},
	}
	bot.handleUpdate(context.Background(), update, handler)

	assert.Empty(t, handler.requests)
	assert.Empty(t, *sent)
}

func TestHandleUpdate_IgnoresNonMessageUpdates(t *testing.T) {
	api, sent := fakeAPI(t)
	bot := newBot(api, []int64{1001}, zerolog.Nop())
	handler := &fakeHandler{}

	bot.handleUpdate(context.Background(), tgbotapi.Update{}, handler)

	assert.Empty(t, handler.requests)
	assert.Empty(t, *sent)
}
