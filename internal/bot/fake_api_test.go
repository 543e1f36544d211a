package bot

import (
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// fakeAPI records outbound calls instead of talking to Telegram.
type fakeAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	copies   []tgbotapi.CopyMessageConfig
	copyErr  error

	updates  chan tgbotapi.Update
	stopOnce sync.Once
	config   tgbotapi.UpdateConfig
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: make(chan tgbotapi.Update, 16)}
}

func (f *fakeAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	f.mu.Lock()
	f.config = config
	f.mu.Unlock()
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.stopOnce.Do(func() { close(f.updates) })
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) CopyMessage(config tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.copyErr != nil {
		return tgbotapi.MessageID{}, f.copyErr
	}
	f.copies = append(f.copies, config)
	return tgbotapi.MessageID{MessageID: 1000 + len(f.copies)}, nil
}

func (f *fakeAPI) messages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := make([]tgbotapi.MessageConfig, 0, len(f.sent))
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

func (f *fakeAPI) copied() []tgbotapi.CopyMessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.CopyMessageConfig(nil), f.copies...)
}

func (f *fakeAPI) answered() []tgbotapi.CallbackConfig {
	f.mu.Lock()
	defer f.mu.Unlock()

	answers := make([]tgbotapi.CallbackConfig, 0, len(f.requests))
	for _, c := range f.requests {
		if a, ok := c.(tgbotapi.CallbackConfig); ok {
			answers = append(answers, a)
		}
	}
	return answers
}

var errMessageNotFound = errors.New("Bad Request: message to copy not found")
