package tui

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskmon/internal/core/eventbus"
	"github.com/hay-kot/taskmon/internal/core/eventbus/testbus"
	"github.com/hay-kot/taskmon/internal/core/notify"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return epoch }

func TestNotificationBuffer_DrainEmpty(t *testing.T) {
	assert.Nil(t, NewNotificationBuffer(nil).Drain())
}

func TestNotificationBuffer_PushDrain(t *testing.T) {
	b := NewNotificationBuffer(fixedNow)
	b.Push(info("first"))
	b.Push(notify.Notification{Level: notify.LevelWarning, Message: "second"})

	items := b.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Message)
	assert.Equal(t, "second", items[1].Message)
	assert.Equal(t, epoch, items[0].CreatedAt)
	assert.Nil(t, b.Drain())
}

func TestNotificationBuffer_SingleSignalDrainsAll(t *testing.T) {
	b := NewNotificationBuffer(fixedNow)
	b.Push(info("one"))
	b.Push(info("two"))

	msg := b.WaitForSignal()()
	require.IsType(t, drainNotificationsMsg{}, msg)
	assert.Len(t, b.Drain(), 2)
}

func TestNotificationBuffer_ConcurrentPush(t *testing.T) {
	b := NewNotificationBuffer(nil)
	const count = 200

	var wg sync.WaitGroup
	for i := range count {
		wg.Go(func() {
			b.Push(info(strconv.Itoa(i)))
		})
	}
	wg.Wait()

	assert.Len(t, b.Drain(), count)
}

func TestNotificationBuffer_Attach(t *testing.T) {
	bus := testbus.New(t)
	b := NewNotificationBuffer(fixedNow)
	b.Attach(bus.EventBus)

	bus.PublishNotificationPublished(eventbus.NotificationPublishedPayload{
		Level:   notify.LevelInfo,
		Title:   eventbus.TitleTaskVerified,
		Message: "Task has been verified and archived.",
	})

	require.IsType(t, drainNotificationsMsg{}, b.WaitForSignal()())
	items := b.Drain()
	require.Len(t, items, 1)
	assert.Equal(t, eventbus.TitleTaskVerified, items[0].Title)
}
