package signals

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Event is delivered to receivers when a signal is sent.
type Event struct {
	Signal string
	Sender string
	Args   map[string]any
}

// Handler is implemented by receiver instances.
type Handler interface {
	Receive(e Event) any
}

// HandlerFunc is a plain function receiver.
type HandlerFunc func(e Event) any

// Kind tells how a receiver was declared.
type Kind int

const (
	// KindInstance is any receiver that is not a plain function.
	KindInstance Kind = iota
	KindFunction
)

// Receiver wraps a signal receiver together with a description of its
// declared shape, captured when the receiver is built.
type Receiver struct {
	kind   Kind
	name   string
	module string
	fn     HandlerFunc
	h      Handler
	id     any
}

// Func builds a receiver from a function. Top-level functions are identified
// by their code, so connecting the same function twice is a no-op. Closures
// and method values are identified by the returned Receiver, which must be
// kept to disconnect them. Method values are described as instances of
// "method".
func Func(fn HandlerFunc) Receiver {
	pc := reflect.ValueOf(fn).Pointer()
	module, name := splitSymbol(runtime.FuncForPC(pc).Name())

	r := Receiver{
		kind:   KindFunction,
		name:   name,
		module: module,
		fn:     fn,
		id:     pc,
	}

	switch {
	case strings.HasSuffix(name, "-fm"):
		r.kind = KindInstance
		r.name = "method"
		r.id = new(byte)
	case isClosure(name):
		r.id = new(byte)
	}

	return r
}

// isClosure reports whether name is a compiler-generated closure symbol,
// e.g. "outer.func1", "outer.func1.2" or "glob..func1".
func isClosure(name string) bool {
	parts := strings.Split(strings.ReplaceAll(name, "[...]", ""), ".")
	for _, part := range parts[1:] {
		if strings.Trim(strings.TrimPrefix(part, "func"), "0123456789") == "" {
			return true
		}
	}

	return false
}

// Instance builds a receiver from a handler value.
func Instance(h Handler) Receiver {
	t := reflect.TypeOf(h)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}

	r := Receiver{
		kind:   KindInstance,
		name:   name,
		module: t.PkgPath(),
		h:      h,
	}

	if reflect.TypeOf(h).Comparable() {
		r.id = h
	} else {
		r.id = new(byte)
	}

	return r
}

// Kind returns how the receiver was declared.
func (r Receiver) Kind() Kind {
	return r.kind
}

// Name is the function name for functions and the type name for instances.
func (r Receiver) Name() string {
	return r.name
}

// Module is the import path of the package declaring the receiver.
func (r Receiver) Module() string {
	return r.module
}

func (r Receiver) String() string {
	if r.kind == KindFunction {
		return fmt.Sprintf("%s.%s", r.module, r.name)
	}

	return fmt.Sprintf("%s.%s instance", r.module, r.name)
}

func (r Receiver) call(e Event) any {
	if r.fn != nil {
		return r.fn(e)
	}

	return r.h.Receive(e)
}

// splitSymbol splits "github.com/a/b/pkg.fn.func1" into
// ("github.com/a/b/pkg", "fn.func1").
func splitSymbol(symbol string) (string, string) {
	slash := strings.LastIndex(symbol, "/")

	dot := strings.Index(symbol[slash+1:], ".")
	if dot < 0 {
		return "", symbol
	}

	dot += slash + 1

	return symbol[:dot], symbol[dot+1:]
}
