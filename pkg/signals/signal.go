package signals

import (
	"fmt"
	"sync"

	"github.com/appkit-dev/syscheck/pkg/util"
)

// AnySender connects a receiver to every sender.
const AnySender = ""

// Dispatcher is the common surface of every signal in a Namespace.
type Dispatcher interface {
	Name() string
	HasListeners(sender string) bool
	Send(sender string, args map[string]any) []Response
}

// Response is what one receiver returned for a Send.
type Response struct {
	Receiver Receiver
	Value    any
	Err      error
}

type ConnectConfig struct {
	DispatchUID string
}

type ConnectOption = util.Option[ConnectConfig]

// WithDispatchUID identifies the connection by uid instead of by receiver,
// so the same receiver can be connected more than once.
func WithDispatchUID(uid string) ConnectOption {
	return util.FunctionalOption[ConnectConfig](func(cfg *ConnectConfig) {
		cfg.DispatchUID = uid
	})
}

type lookupKey struct {
	id     any
	sender string
}

type binding struct {
	key      lookupKey
	receiver Receiver
}

// Signal dispatches events to connected receivers in connection order.
type Signal struct {
	name      string
	mu        sync.RWMutex
	receivers []binding
}

func New(name string) *Signal {
	return &Signal{name: name}
}

func (s *Signal) Name() string {
	return s.name
}

func newKey(r Receiver, sender string, opts []ConnectOption) lookupKey {
	var cfg ConnectConfig
	util.ApplyOptions(&cfg, opts...)

	if cfg.DispatchUID != "" {
		return lookupKey{id: cfg.DispatchUID, sender: sender}
	}

	return lookupKey{id: r.id, sender: sender}
}

// Connect registers a receiver for the given sender label, or AnySender.
// Connecting an already connected receiver is a no-op.
func (s *Signal) Connect(r Receiver, sender string, opts ...ConnectOption) {
	key := newKey(r, sender, opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.receivers {
		if b.key == key {
			return
		}
	}

	s.receivers = append(s.receivers, binding{key: key, receiver: r})
}

// Disconnect removes a receiver and reports whether it was connected.
func (s *Signal) Disconnect(r Receiver, sender string, opts ...ConnectOption) bool {
	key := newKey(r, sender, opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.receivers {
		if b.key == key {
			s.receivers = append(s.receivers[:i], s.receivers[i+1:]...)

			return true
		}
	}

	return false
}

// HasListeners reports whether any receiver would get an event from sender.
func (s *Signal) HasListeners(sender string) bool {
	return len(s.live(sender)) > 0
}

func (s *Signal) live(sender string) []Receiver {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Receiver
	for _, b := range s.receivers {
		if b.key.sender == AnySender || b.key.sender == sender {
			out = append(out, b.receiver)
		}
	}

	return out
}

// Send delivers an event to all matching receivers. A panicking receiver
// stops delivery and propagates to the caller.
func (s *Signal) Send(sender string, args map[string]any) []Response {
	e := Event{Signal: s.name, Sender: sender, Args: args}

	receivers := s.live(sender)
	responses := make([]Response, 0, len(receivers))
	for _, r := range receivers {
		responses = append(responses, Response{Receiver: r, Value: r.call(e)})
	}

	return responses
}

// SendRobust is like Send but turns receiver panics into errors on the
// corresponding Response and keeps delivering.
func (s *Signal) SendRobust(sender string, args map[string]any) []Response {
	e := Event{Signal: s.name, Sender: sender, Args: args}

	receivers := s.live(sender)
	responses := make([]Response, 0, len(receivers))
	for _, r := range receivers {
		responses = append(responses, callRobust(r, e))
	}

	return responses
}

func callRobust(r Receiver, e Event) (resp Response) {
	resp.Receiver = r

	defer func() {
		if rec := recover(); rec != nil {
			if err, ok := rec.(error); ok {
				resp.Err = fmt.Errorf("receiver %s: %w", r, err)
			} else {
				resp.Err = fmt.Errorf("receiver %s: %v", r, rec)
			}
		}
	}()

	resp.Value = r.call(e)

	return resp
}
