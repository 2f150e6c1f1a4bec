package apps

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/appkit-dev/syscheck/pkg/signals"
)

var (
	ErrAppNotFound    = errors.New("no installed app with label")
	ErrDuplicateApp   = errors.New("application labels aren't unique")
	ErrModelNotFound  = errors.New("app doesn't have a model")
	ErrDuplicateModel = errors.New("conflicting models in application")
	ErrMissingCheck   = errors.New("model has no Check method")
	ErrModelInstalled = errors.New("model is already registered")
)

type appEntry struct {
	config *AppConfig
	models []*Descriptor
}

// Registry holds installed applications and their models. It owns the
// lifecycle signal namespace so that lazy signal references resolve as
// models are registered.
type Registry struct {
	mu      sync.RWMutex
	apps    []*appEntry
	byLabel map[string]*appEntry
	signals *signals.Namespace
}

func NewRegistry() *Registry {
	r := &Registry{
		byLabel: make(map[string]*appEntry),
	}

	r.signals = signals.NewNamespace(r)

	return r
}

// Signals returns the lifecycle signals of this registry.
func (r *Registry) Signals() *signals.Namespace {
	return r.signals
}

// Populate installs application configs in order. All label conflicts are
// reported together.
func (r *Registry) Populate(configs ...*AppConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error

	for _, cfg := range configs {
		if _, exists := r.byLabel[cfg.Label]; exists {
			errs = append(errs, fmt.Errorf("%w, duplicates: %s", ErrDuplicateApp, cfg.Label))

			continue
		}

		entry := &appEntry{config: cfg}
		r.apps = append(r.apps, entry)
		r.byLabel[cfg.Label] = entry
	}

	return utilerrors.NewAggregate(errs)
}

// GetAppConfigs returns the installed app configs in installation order.
func (r *Registry) GetAppConfigs() []*AppConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configs := make([]*AppConfig, len(r.apps))
	for i, e := range r.apps {
		configs[i] = e.config
	}

	return configs
}

func (r *Registry) GetAppConfig(label string) (*AppConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrAppNotFound, label)
	}

	return entry.config, nil
}

// Register adds model to the application labelled appLabel and sends
// class_prepared for it. The object name defaults to the model's Go type name.
func (r *Registry) Register(appLabel string, model Model) error {
	d, err := describe(model)
	if err != nil {
		return fmt.Errorf("registering %T in %q: %w", model, appLabel, err)
	}

	r.mu.Lock()

	entry, ok := r.byLabel[appLabel]
	if !ok {
		r.mu.Unlock()

		return fmt.Errorf("%w %q", ErrAppNotFound, appLabel)
	}

	meta := model.ModelMeta()
	if meta.AppConfig != nil {
		r.mu.Unlock()

		return fmt.Errorf("%w: %s", ErrModelInstalled, meta.Label())
	}

	name := meta.ObjectName
	if name == "" {
		name = objectName(model)
	}

	for _, existing := range entry.models {
		if strings.EqualFold(existing.Meta().ObjectName, name) {
			r.mu.Unlock()

			return fmt.Errorf("%w %q: %s", ErrDuplicateModel, appLabel, name)
		}
	}

	meta.ObjectName = name
	meta.AppConfig = entry.config
	entry.models = append(entry.models, d)

	r.mu.Unlock()

	r.signals.ClassPrepared.Send(meta.Label(), nil)

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(appLabel string, model Model) {
	if err := r.Register(appLabel, model); err != nil {
		panic(err)
	}
}

// GetModels returns all registered models, by app installation order and
// then registration order.
func (r *Registry) GetModels() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var models []*Descriptor
	for _, e := range r.apps {
		models = append(models, e.models...)
	}

	return models
}

// GetRegisteredModel looks up a model; modelName matches case-insensitively.
func (r *Registry) GetRegisteredModel(appLabel string, modelName string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byLabel[appLabel]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrAppNotFound, appLabel)
	}

	for _, d := range entry.models {
		if strings.EqualFold(d.Meta().ObjectName, modelName) {
			return d, nil
		}
	}

	return nil, fmt.Errorf("%w %q: %s", ErrModelNotFound, appLabel, modelName)
}

// ResolveLabel implements signals.Lookup.
func (r *Registry) ResolveLabel(appLabel string, modelName string) (string, bool) {
	d, err := r.GetRegisteredModel(appLabel, modelName)
	if err != nil {
		return "", false
	}

	return d.Label(), true
}

func objectName(model Model) string {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}
