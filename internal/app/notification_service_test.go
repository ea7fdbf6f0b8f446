package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"homework_status_bot/internal/domain/notification"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type sentMessage struct {
	chatID string
	text   string
}

type fakeTelegramClient struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (f *fakeTelegramClient) SendMessage(chatID string, text string, _ *telebot.SendOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeTelegramClient) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

type fakeJournal struct {
	recorded []*notification.Delivery
	err      error
}

func (j *fakeJournal) Record(_ context.Context, d *notification.Delivery) error {
	j.recorded = append(j.recorded, d)
	return j.err
}

func (j *fakeJournal) ListRecent(_ context.Context, limit int) ([]*notification.Delivery, error) {
	if limit > len(j.recorded) {
		limit = len(j.recorded)
	}
	return j.recorded[:limit], nil
}

func TestNotifySendsToConfiguredChat(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	tg := &fakeTelegramClient{}
	journal := &fakeJournal{}

	svc := NewNotificationService(tg, journal, "42", logrus.NewEntry(log))
	svc.Notify(context.Background(), notification.KindStatusChange, "hello")

	assert.Equal(t, []sentMessage{{chatID: "42", text: "hello"}}, tg.messages())
	require.Len(t, journal.recorded, 1)
	assert.True(t, journal.recorded[0].Delivered)
	assert.Equal(t, notification.KindStatusChange, journal.recorded[0].Kind)
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, e.Level)
	}
}

func TestNotifySwallowsDeliveryError(t *testing.T) {
	log, hook := test.NewNullLogger()
	tg := &fakeTelegramClient{err: errors.New("chat not found")}
	journal := &fakeJournal{}

	svc := NewNotificationService(tg, journal, "42", logrus.NewEntry(log))
	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), notification.KindFailure, "boom")
	})

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	require.Len(t, journal.recorded, 1)
	assert.False(t, journal.recorded[0].Delivered)
	assert.Equal(t, "chat not found", journal.recorded[0].Error)
}

func TestNotifyWithoutJournal(t *testing.T) {
	log, _ := test.NewNullLogger()
	tg := &fakeTelegramClient{}

	svc := NewNotificationService(tg, nil, "42", logrus.NewEntry(log))
	svc.Notify(context.Background(), notification.KindStatusChange, "hello")

	assert.Len(t, tg.messages(), 1)
}

func TestNotifySwallowsJournalError(t *testing.T) {
	log, hook := test.NewNullLogger()
	tg := &fakeTelegramClient{}
	journal := &fakeJournal{err: errors.New("db down")}

	svc := NewNotificationService(tg, journal, "42", logrus.NewEntry(log))
	svc.Notify(context.Background(), notification.KindStatusChange, "hello")

	assert.Len(t, tg.messages(), 1)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
