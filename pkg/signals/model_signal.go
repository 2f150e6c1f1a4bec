package signals

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/appkit-dev/syscheck/pkg/util"
)

var ErrInvalidSender = errors.New("specified sender must be a model label of the 'app_label.ModelName' form")

// Lookup resolves a model reference to the canonical label of a registered
// model. Model names match case-insensitively.
type Lookup interface {
	ResolveLabel(appLabel string, modelName string) (string, bool)
}

// Reference is a lazy sender reference, as written by the caller.
type Reference struct {
	AppLabel  string
	ModelName string
}

// ParseReference splits "app_label.ModelName".
func ParseReference(label string) (Reference, error) {
	parts := strings.Split(label, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Reference{}, fmt.Errorf("%w: %q", ErrInvalidSender, label)
	}

	return Reference{AppLabel: parts[0], ModelName: parts[1]}, nil
}

// Components returns the path components of the reference.
func (r Reference) Components() []string {
	return []string{r.AppLabel, r.ModelName}
}

// String returns the dotted path of the reference.
func (r Reference) String() string {
	return strings.Join(r.Components(), ".")
}

func (r Reference) matches(appLabel string, modelName string) bool {
	return r.AppLabel == appLabel && strings.EqualFold(r.ModelName, modelName)
}

// PendingReceiver is a receiver waiting for its sender to be registered.
type PendingReceiver struct {
	Receiver    Receiver
	DispatchUID string
}

// UnresolvedReference lists the receivers waiting on one reference.
type UnresolvedReference struct {
	Reference Reference
	Receivers []PendingReceiver
}

// ModelSignal is a Signal whose senders are models. Receivers may name a
// sender before that model is registered; such connections stay pending
// until the model is prepared.
type ModelSignal struct {
	*Signal

	lookup     Lookup
	mu         sync.Mutex
	unresolved []UnresolvedReference
}

func NewModelSignal(name string, lookup Lookup) *ModelSignal {
	return &ModelSignal{
		Signal: New(name),
		lookup: lookup,
	}
}

// Connect connects r to the model labelled sender. When the model is not
// registered yet the connection is recorded as an unresolved reference.
func (s *ModelSignal) Connect(r Receiver, sender string, opts ...ConnectOption) error {
	if sender == AnySender {
		s.Signal.Connect(r, sender, opts...)

		return nil
	}

	ref, err := ParseReference(sender)
	if err != nil {
		return err
	}

	// The lookup and the append happen under one lock: a class_prepared
	// resolve for this model waits on it and then sees the pending entry.
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lookup != nil {
		if label, ok := s.lookup.ResolveLabel(ref.AppLabel, ref.ModelName); ok {
			s.Signal.Connect(r, label, opts...)

			return nil
		}
	}

	var cfg ConnectConfig
	util.ApplyOptions(&cfg, opts...)

	pending := PendingReceiver{Receiver: r, DispatchUID: cfg.DispatchUID}

	for i := range s.unresolved {
		if s.unresolved[i].Reference == ref {
			s.unresolved[i].Receivers = append(s.unresolved[i].Receivers, pending)

			return nil
		}
	}

	s.unresolved = append(s.unresolved, UnresolvedReference{
		Reference: ref,
		Receivers: []PendingReceiver{pending},
	})

	return nil
}

// UnresolvedReferences returns a snapshot of pending references in the order
// they were first seen.
func (s *ModelSignal) UnresolvedReferences() []UnresolvedReference {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]UnresolvedReference, len(s.unresolved))
	for i, u := range s.unresolved {
		out[i] = UnresolvedReference{
			Reference: u.Reference,
			Receivers: append([]PendingReceiver(nil), u.Receivers...),
		}
	}

	return out
}

// resolve connects every receiver waiting on the prepared model.
func (s *ModelSignal) resolve(e Event) any {
	ref, err := ParseReference(e.Sender)
	if err != nil {
		return nil
	}

	var pending []PendingReceiver

	s.mu.Lock()
	kept := s.unresolved[:0]
	for _, u := range s.unresolved {
		if u.Reference.matches(ref.AppLabel, ref.ModelName) {
			pending = append(pending, u.Receivers...)

			continue
		}

		kept = append(kept, u)
	}
	s.unresolved = kept
	s.mu.Unlock()

	for _, p := range pending {
		s.Signal.Connect(p.Receiver, e.Sender, WithDispatchUID(p.DispatchUID))
	}

	return len(pending)
}
