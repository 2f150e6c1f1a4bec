package signals

import (
	"sort"
)

// Names of the model lifecycle signals.
const (
	NamePreInit       = "pre_init"
	NamePostInit      = "post_init"
	NamePreSave       = "pre_save"
	NamePostSave      = "post_save"
	NamePreDelete     = "pre_delete"
	NamePostDelete    = "post_delete"
	NameM2MChanged    = "m2m_changed"
	NamePreMigrate    = "pre_migrate"
	NamePostMigrate   = "post_migrate"
	NameClassPrepared = "class_prepared"
)

// Namespace is the fixed set of lifecycle signals owned by a model registry.
type Namespace struct {
	PreInit    *ModelSignal
	PostInit   *ModelSignal
	PreSave    *ModelSignal
	PostSave   *ModelSignal
	PreDelete  *ModelSignal
	PostDelete *ModelSignal
	M2MChanged *ModelSignal

	PreMigrate    *Signal
	PostMigrate   *Signal
	ClassPrepared *Signal

	byName map[string]Dispatcher
}

// NewNamespace builds the lifecycle signals. Every model signal resolves its
// pending references when ClassPrepared is sent for the matching model.
func NewNamespace(lookup Lookup) *Namespace {
	n := &Namespace{
		PreInit:       NewModelSignal(NamePreInit, lookup),
		PostInit:      NewModelSignal(NamePostInit, lookup),
		PreSave:       NewModelSignal(NamePreSave, lookup),
		PostSave:      NewModelSignal(NamePostSave, lookup),
		PreDelete:     NewModelSignal(NamePreDelete, lookup),
		PostDelete:    NewModelSignal(NamePostDelete, lookup),
		M2MChanged:    NewModelSignal(NameM2MChanged, lookup),
		PreMigrate:    New(NamePreMigrate),
		PostMigrate:   New(NamePostMigrate),
		ClassPrepared: New(NameClassPrepared),
	}

	n.byName = map[string]Dispatcher{
		NamePreInit:       n.PreInit,
		NamePostInit:      n.PostInit,
		NamePreSave:       n.PreSave,
		NamePostSave:      n.PostSave,
		NamePreDelete:     n.PreDelete,
		NamePostDelete:    n.PostDelete,
		NameM2MChanged:    n.M2MChanged,
		NamePreMigrate:    n.PreMigrate,
		NamePostMigrate:   n.PostMigrate,
		NameClassPrepared: n.ClassPrepared,
	}

	for _, name := range n.Names() {
		if ms, ok := n.byName[name].(*ModelSignal); ok {
			n.ClassPrepared.Connect(Func(ms.resolve), AnySender, WithDispatchUID("resolve:"+name))
		}
	}

	return n
}

// Names returns the signal names in sorted order.
func (n *Namespace) Names() []string {
	names := make([]string, 0, len(n.byName))
	for name := range n.byName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Lookup returns the signal registered under name.
func (n *Namespace) Lookup(name string) (Dispatcher, bool) {
	d, ok := n.byName[name]

	return d, ok
}
