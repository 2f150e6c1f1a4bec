package apps

import (
	"reflect"

	"github.com/appkit-dev/syscheck/pkg/check"
)

// Meta holds the registry-assigned metadata of a model.
type Meta struct {
	AppConfig  *AppConfig
	ObjectName string
}

// AppLabel returns the label of the owning application.
func (m *Meta) AppLabel() string {
	if m.AppConfig == nil {
		return ""
	}

	return m.AppConfig.Label
}

// Label returns "app_label.ObjectName".
func (m *Meta) Label() string {
	return m.AppLabel() + "." + m.ObjectName
}

// Model is a data model that can be registered.
type Model interface {
	ModelMeta() *Meta
}

// SelfChecker is the self-check capability every model is expected to have.
type SelfChecker interface {
	Check(opts check.Options) []check.Diagnostic
}

// Base provides Model and SelfChecker. Embed it in model structs.
//
// A struct field named Check declared next to the embedded Base hides the
// promoted Check method, which the registry reports as an override.
type Base struct {
	meta Meta
}

// NewBase creates a bare model with the given object name, for models that
// are declared rather than defined in Go.
func NewBase(objectName string) *Base {
	return &Base{meta: Meta{ObjectName: objectName}}
}

func (b *Base) ModelMeta() *Meta {
	return &b.meta
}

func (b *Base) Label() string {
	return b.meta.Label()
}

// Check runs the default model checks, which report nothing.
func (b *Base) Check(check.Options) []check.Diagnostic {
	return nil
}

// Descriptor is a registered model together with its self-check capability
// as classified at registration time.
type Descriptor struct {
	model      Model
	checker    SelfChecker
	shadowedBy string
}

// Model returns the registered model value.
func (d *Descriptor) Model() Model {
	return d.model
}

func (d *Descriptor) Meta() *Meta {
	return d.model.ModelMeta()
}

// Label returns "app_label.ObjectName".
func (d *Descriptor) Label() string {
	return d.Meta().Label()
}

// Checker returns the model's self-check method, if it has a genuine one.
func (d *Descriptor) Checker() (SelfChecker, bool) {
	return d.checker, d.checker != nil
}

// ShadowedBy returns the type name of the value hiding the Check method,
// or "" when the method is intact.
func (d *Descriptor) ShadowedBy() string {
	return d.shadowedBy
}

// describe classifies the self-check capability of model.
func describe(model Model) (*Descriptor, error) {
	d := &Descriptor{model: model}

	if sc, ok := model.(SelfChecker); ok {
		d.checker = sc

		return d, nil
	}

	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, ErrMissingCheck
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, ErrMissingCheck
	}

	field := v.FieldByName("Check")
	if !field.IsValid() {
		return nil, ErrMissingCheck
	}

	d.shadowedBy = typeName(field)

	return d, nil
}

func typeName(v reflect.Value) string {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "nil"
		}

		v = v.Elem()
	}

	t := v.Type()

	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}
