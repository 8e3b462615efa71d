package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	messages chan []byte
	errors   chan error

	mu     sync.Mutex
	closed bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		messages: make(chan []byte, 16),
		errors:   make(chan error, 1),
	}
}

func (t *fakeTransport) Messages() <-chan []byte { return t.messages }
func (t *fakeTransport) Errors() <-chan error    { return t.errors }

func (t *fakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *fakeTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func staticFactory(t *fakeTransport) TransportFactory {
	return func(ctx context.Context, key string) (Transport, error) {
		return t, nil
	}
}

func messageFrame(id, sender, content, createdAt string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"message","id":%q,"chat_id":"C1","send_id":%q,"send_name":"sender","content":%q,"created_at":%q}`,
		id, sender, content, createdAt))
}

// collectingCallbacks signals on a channel after every list update.
func collectingCallbacks(updates chan []Message, errs chan error) Callbacks {
	return Callbacks{
		OnMessages: func(key string, messages []Message) {
			updates <- messages
		},
		OnError: func(key string, err error) {
			if errs != nil {
				errs <- err
			}
		},
	}
}

func waitUpdate(t *testing.T, updates chan []Message) []Message {
	t.Helper()
	select {
	case list := <-updates:
		return list
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for list update")
		return nil
	}
}

func TestDuplicateIdIsDropped(t *testing.T) {
	transport := newFakeTransport()
	subscriber := NewSubscriber(staticFactory(transport))
	updates := make(chan []Message, 16)

	require.NoError(t, subscriber.Subscribe(context.Background(), "C1", collectingCallbacks(updates, nil)))
	defer subscriber.Unsubscribe("C1")

	transport.messages <- messageFrame("101", "U1", "hello", "2026-08-24 10:00:00")
	first := waitUpdate(t, updates)
	require.Len(t, first, 1)

	// Same id again: no append, no callback.
	transport.messages <- messageFrame("101", "U1", "hello", "2026-08-24 10:00:00")
	transport.messages <- messageFrame("102", "U1", "second", "2026-08-24 10:00:05")
	second := waitUpdate(t, updates)
	require.Len(t, second, 2)
	require.Equal(t, "101", second[0].Id)
	require.Equal(t, "102", second[1].Id)
}

func TestOptimisticEchoReplacesPending(t *testing.T) {
	transport := newFakeTransport()
	subscriber := NewSubscriber(staticFactory(transport))
	updates := make(chan []Message, 16)

	require.NoError(t, subscriber.Subscribe(context.Background(), "C1", collectingCallbacks(updates, nil)))
	defer subscriber.Unsubscribe("C1")

	sentAt, err := time.ParseInLocation("2006-01-02 15:04:05", "2026-08-24 10:00:00", time.Local)
	require.NoError(t, err)
	subscriber.AddPending("C1", Message{
		ClientMsgId: "local-1",
		SenderId:    "U1",
		Content:     "hello",
		SentAt:      sentAt,
	})
	pendingList := waitUpdate(t, updates)
	require.Len(t, pendingList, 1)
	require.True(t, pendingList[0].Pending)

	transport.messages <- []byte(
		`{"event":"message","id":"201","chat_id":"C1","client_msg_id":"local-1","send_id":"U1","send_name":"sender","content":"hello","created_at":"2026-08-24 10:00:01"}`)
	echoed := waitUpdate(t, updates)
	require.Len(t, echoed, 1, "echo must replace the pending entry, not append")
	require.Equal(t, "201", echoed[0].Id)
	require.False(t, echoed[0].Pending)
}

func TestEchoWithoutClientIdMatchesByContentWindow(t *testing.T) {
	transport := newFakeTransport()
	subscriber := NewSubscriber(staticFactory(transport))
	updates := make(chan []Message, 16)

	require.NoError(t, subscriber.Subscribe(context.Background(), "C1", collectingCallbacks(updates, nil)))
	defer subscriber.Unsubscribe("C1")

	sentAt, err := time.ParseInLocation("2006-01-02 15:04:05", "2026-08-24 10:00:00", time.Local)
	require.NoError(t, err)
	subscriber.AddPending("C1", Message{SenderId: "U1", Content: "hello", SentAt: sentAt})
	waitUpdate(t, updates)

	// Inside the window: replaced.
	transport.messages <- messageFrame("301", "U1", "hello", "2026-08-24 10:00:01")
	echoed := waitUpdate(t, updates)
	require.Len(t, echoed, 1)
	require.Equal(t, "301", echoed[0].Id)

	// A later identical message outside any pending window appends.
	transport.messages <- messageFrame("302", "U1", "hello", "2026-08-24 10:00:30")
	appended := waitUpdate(t, updates)
	require.Len(t, appended, 2)
}

func TestListStaysSortedByTimestamp(t *testing.T) {
	transport := newFakeTransport()
	subscriber := NewSubscriber(staticFactory(transport))
	updates := make(chan []Message, 16)

	require.NoError(t, subscriber.Subscribe(context.Background(), "C1", collectingCallbacks(updates, nil)))
	defer subscriber.Unsubscribe("C1")

	transport.messages <- messageFrame("402", "U1", "later", "2026-08-24 10:00:10")
	waitUpdate(t, updates)
	transport.messages <- messageFrame("401", "U2", "earlier", "2026-08-24 10:00:00")
	list := waitUpdate(t, updates)

	require.Len(t, list, 2)
	require.Equal(t, "401", list[0].Id)
	require.Equal(t, "402", list[1].Id)
}

func TestReconnectStopsAtCap(t *testing.T) {
	var mu sync.Mutex
	dials := 0
	factory := func(ctx context.Context, key string) (Transport, error) {
		mu.Lock()
		defer mu.Unlock()
		dials++
		if dials == 1 {
			transport := newFakeTransport()
			transport.errors <- errors.New("connection reset")
			return transport, nil
		}
		return nil, errors.New("dial refused")
	}

	const retryCap = 3
	subscriber := NewSubscriber(factory, WithRetry(retryCap, time.Millisecond))
	updates := make(chan []Message, 1)
	errs := make(chan error, 1)

	require.NoError(t, subscriber.Subscribe(context.Background(), "C1", collectingCallbacks(updates, errs)))

	select {
	case err := <-errs:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the retry cap")
	}

	mu.Lock()
	total := dials
	mu.Unlock()
	// Initial dial plus exactly cap retry attempts.
	require.Equal(t, 1+retryCap, total)

	// Bookkeeping is gone: a pending add after stop is a no-op.
	subscriber.AddPending("C1", Message{SenderId: "U1", Content: "x"})
	require.Nil(t, subscriber.Messages("C1"))
}

func TestUnsubscribeClosesTransport(t *testing.T) {
	transport := newFakeTransport()
	subscriber := NewSubscriber(staticFactory(transport))
	updates := make(chan []Message, 1)

	require.NoError(t, subscriber.Subscribe(context.Background(), "C1", collectingCallbacks(updates, nil)))
	subscriber.Unsubscribe("C1")

	require.True(t, transport.isClosed())
	require.Nil(t, subscriber.Messages("C1"))
}

func TestResubscribeSwapsCallbacksWithoutRedial(t *testing.T) {
	var mu sync.Mutex
	dials := 0
	transport := newFakeTransport()
	factory := func(ctx context.Context, key string) (Transport, error) {
		mu.Lock()
		defer mu.Unlock()
		dials++
		return transport, nil
	}

	subscriber := NewSubscriber(factory)
	first := make(chan []Message, 4)
	second := make(chan []Message, 4)

	require.NoError(t, subscriber.Subscribe(context.Background(), "C1", collectingCallbacks(first, nil)))
	require.NoError(t, subscriber.Subscribe(context.Background(), "C1", collectingCallbacks(second, nil)))
	defer subscriber.Unsubscribe("C1")

	mu.Lock()
	require.Equal(t, 1, dials)
	mu.Unlock()

	transport.messages <- messageFrame("501", "U1", "hi", "2026-08-24 10:00:00")
	list := waitUpdate(t, second)
	require.Len(t, list, 1)
	require.Empty(t, first)
}
