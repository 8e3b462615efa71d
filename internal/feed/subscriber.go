package feed

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/valyala/fastjson"
	"go.uber.org/zap"
)

var errTransportClosed = errors.New("feed: transport closed")

// Subscriber multiplexes per-key subscriptions over per-key transports.
// One goroutine runs per key; all list mutation happens under mu so the
// callbacks observe a consistent ordering.
type Subscriber struct {
	dial       TransportFactory
	retryCap   int
	retryDelay time.Duration

	mu   sync.Mutex
	subs map[string]*subscription

	parserPool fastjson.ParserPool
}

type subscription struct {
	key       string
	callbacks Callbacks
	transport Transport
	retries   int
	seen      map[string]struct{}
	messages  []Message
	cancel    context.CancelFunc
}

// Option tweaks a Subscriber.
type Option func(*Subscriber)

// WithRetry overrides the reconnect cap and delay.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(s *Subscriber) {
		s.retryCap = maxRetries
		s.retryDelay = delay
	}
}

// NewSubscriber builds a subscriber around a transport factory.
func NewSubscriber(dial TransportFactory, opts ...Option) *Subscriber {
	s := &Subscriber{
		dial:       dial,
		retryCap:   DefaultRetryCap,
		retryDelay: DefaultRetryDelay,
		subs:       make(map[string]*subscription),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe opens a stream for key. Re-subscribing an active key swaps
// the callback set and leaves the transport alone.
func (s *Subscriber) Subscribe(ctx context.Context, key string, callbacks Callbacks) error {
	s.mu.Lock()
	if sub, ok := s.subs[key]; ok {
		sub.callbacks = callbacks
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	transport, err := s.dial(ctx, key)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	sub := &subscription{
		key:       key,
		callbacks: callbacks,
		transport: transport,
		seen:      make(map[string]struct{}),
		cancel:    cancel,
	}

	s.mu.Lock()
	s.subs[key] = sub
	s.mu.Unlock()

	go s.run(runCtx, sub)
	return nil
}

// Unsubscribe closes the key's transport and drops all bookkeeping.
// Unknown keys are a no-op.
func (s *Subscriber) Unsubscribe(key string) {
	s.mu.Lock()
	sub, ok := s.subs[key]
	if ok {
		delete(s.subs, key)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	sub.cancel()
	if err := sub.transport.Close(); err != nil {
		zap.L().Debug("close transport failed", zap.String("key", key), zap.Error(err))
	}
}

// AddPending inserts an optimistic local entry so the UI can render the
// message before the server echo lands. The echo replaces it via
// reconcile.
func (s *Subscriber) AddPending(key string, message Message) {
	message.Pending = true
	if message.SentAt.IsZero() {
		message.SentAt = time.Now()
	}

	s.mu.Lock()
	sub, ok := s.subs[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	sub.messages = append(sub.messages, message)
	sortByTime(sub.messages)
	snapshot := snapshotOf(sub.messages)
	callbacks := sub.callbacks
	s.mu.Unlock()

	if callbacks.OnMessages != nil {
		callbacks.OnMessages(key, snapshot)
	}
}

// Messages returns a copy of the key's current ordered list.
func (s *Subscriber) Messages(key string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[key]
	if !ok {
		return nil
	}
	return snapshotOf(sub.messages)
}

// run pumps the key's transport, reconnecting on failure until the
// retry cap is spent.
func (s *Subscriber) run(ctx context.Context, sub *subscription) {
	for {
		select {
		case <-ctx.Done():
			return

		case frame, ok := <-sub.transport.Messages():
			if !ok {
				if stopped := s.reconnect(ctx, sub, errTransportClosed); stopped {
					return
				}
				continue
			}
			s.handleFrame(sub.key, frame)

		case err := <-sub.transport.Errors():
			if stopped := s.reconnect(ctx, sub, err); stopped {
				return
			}
		}
	}
}

// reconnect retries the dial with a fixed delay. Returns true when the
// subscription should stop, either because the cap is spent or the key
// was unsubscribed meanwhile.
func (s *Subscriber) reconnect(ctx context.Context, sub *subscription, cause error) bool {
	for {
		s.mu.Lock()
		if s.subs[sub.key] != sub {
			s.mu.Unlock()
			return true
		}
		sub.retries++
		attempt := sub.retries
		callbacks := sub.callbacks
		s.mu.Unlock()

		if attempt > s.retryCap {
			zap.L().Warn("retry cap exhausted",
				zap.String("key", sub.key), zap.Int("attempts", attempt-1), zap.Error(cause))
			if callbacks.OnError != nil {
				callbacks.OnError(sub.key, cause)
			}
			s.mu.Lock()
			if s.subs[sub.key] == sub {
				delete(s.subs, sub.key)
			}
			s.mu.Unlock()
			return true
		}

		select {
		case <-ctx.Done():
			return true
		case <-time.After(s.retryDelay):
		}

		transport, err := s.dial(ctx, sub.key)
		if err != nil {
			cause = err
			continue
		}

		s.mu.Lock()
		if s.subs[sub.key] != sub {
			s.mu.Unlock()
			_ = transport.Close()
			return true
		}
		sub.transport = transport
		sub.retries = 0
		s.mu.Unlock()
		zap.L().Info("transport reconnected", zap.String("key", sub.key), zap.Int("attempt", attempt))
		return false
	}
}

type wireMessage struct {
	Id          string `json:"id"`
	ChatId      string `json:"chat_id"`
	ClientMsgId string `json:"client_msg_id"`
	SendId      string `json:"send_id"`
	SendName    string `json:"send_name"`
	Content     string `json:"content"`
	Url         string `json:"url"`
	CreatedAt   string `json:"created_at"`
}

// handleFrame applies one inbound frame: message frames run through the
// dedup/reconcile path, everything else passes through raw.
func (s *Subscriber) handleFrame(key string, frame []byte) {
	parser := s.parserPool.Get()
	parsed, err := parser.ParseBytes(frame)
	if err != nil {
		s.parserPool.Put(parser)
		zap.L().Debug("malformed frame", zap.String("key", key), zap.Error(err))
		return
	}
	event := string(parsed.GetStringBytes("event"))
	s.parserPool.Put(parser)

	if event != "message" {
		s.mu.Lock()
		sub, ok := s.subs[key]
		var callbacks Callbacks
		if ok {
			callbacks = sub.callbacks
		}
		s.mu.Unlock()
		if ok && callbacks.OnEvent != nil {
			callbacks.OnEvent(key, frame)
		}
		return
	}

	var wire wireMessage
	if err := json.Unmarshal(frame, &wire); err != nil {
		zap.L().Debug("decode message frame failed", zap.String("key", key), zap.Error(err))
		return
	}
	sentAt, err := time.ParseInLocation("2006-01-02 15:04:05", wire.CreatedAt, time.Local)
	if err != nil {
		sentAt = time.Now()
	}
	incoming := Message{
		Id:          wire.Id,
		ChatId:      wire.ChatId,
		ClientMsgId: wire.ClientMsgId,
		SenderId:    wire.SendId,
		SenderName:  wire.SendName,
		Content:     wire.Content,
		Url:         wire.Url,
		SentAt:      sentAt,
	}

	s.mu.Lock()
	sub, ok := s.subs[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	if _, dup := sub.seen[incoming.Id]; dup {
		s.mu.Unlock()
		return
	}
	sub.seen[incoming.Id] = struct{}{}

	if idx := findPendingMatch(sub.messages, incoming); idx >= 0 {
		sub.messages[idx] = incoming
	} else {
		sub.messages = append(sub.messages, incoming)
	}
	sortByTime(sub.messages)
	snapshot := snapshotOf(sub.messages)
	callbacks := sub.callbacks
	s.mu.Unlock()

	if callbacks.OnMessages != nil {
		callbacks.OnMessages(key, snapshot)
	}
}

// findPendingMatch locates the optimistic entry the incoming echo
// corresponds to. A client_msg_id match wins outright; otherwise fall
// back to (sender, content, within EchoMatchWindow). Timing-based, so
// it can misfire on rapid identical sends.
func findPendingMatch(messages []Message, incoming Message) int {
	fallback := -1
	for i, m := range messages {
		if !m.Pending || m.SenderId != incoming.SenderId {
			continue
		}
		if incoming.ClientMsgId != "" && m.ClientMsgId == incoming.ClientMsgId {
			return i
		}
		if fallback == -1 && m.Content == incoming.Content && absDuration(incoming.SentAt.Sub(m.SentAt)) <= EchoMatchWindow {
			fallback = i
		}
	}
	return fallback
}

func sortByTime(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].SentAt.Before(messages[j].SentAt)
	})
}

func snapshotOf(messages []Message) []Message {
	out := make([]Message, len(messages))
	copy(out, messages)
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
