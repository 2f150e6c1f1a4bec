package signals_test

import (
	"reflect"
	"testing"

	"github.com/appkit-dev/syscheck/pkg/signals"

	. "github.com/onsi/gomega"
)

func onProductSaved(_ signals.Event) any {
	return "saved"
}

type auditHandler struct {
	events []signals.Event
}

func (h *auditHandler) Receive(e signals.Event) any {
	h.events = append(h.events, e)

	return len(h.events)
}

func TestFuncReceiver(t *testing.T) {
	g := NewWithT(t)

	r := signals.Func(onProductSaved)

	g.Expect(r.Kind()).To(Equal(signals.KindFunction))
	g.Expect(r.Name()).To(Equal("onProductSaved"))
	g.Expect(r.Module()).To(Equal(reflect.TypeOf(auditHandler{}).PkgPath()))
}

func TestInstanceReceiver(t *testing.T) {
	g := NewWithT(t)

	r := signals.Instance(&auditHandler{})

	g.Expect(r.Kind()).To(Equal(signals.KindInstance))
	g.Expect(r.Name()).To(Equal("auditHandler"))
	g.Expect(r.Module()).To(Equal(reflect.TypeOf(auditHandler{}).PkgPath()))
}

func TestClosureReceiverIsFunction(t *testing.T) {
	g := NewWithT(t)

	r := signals.Func(func(signals.Event) any { return nil })

	g.Expect(r.Kind()).To(Equal(signals.KindFunction))
	g.Expect(r.Name()).To(HavePrefix("TestClosureReceiverIsFunction.func"))
}

func TestMethodValueReceiverIsInstance(t *testing.T) {
	g := NewWithT(t)

	r := signals.Func((&counter{}).Handle)

	g.Expect(r.Kind()).To(Equal(signals.KindInstance))
	g.Expect(r.Name()).To(Equal("method"))
	g.Expect(r.Module()).To(Equal(reflect.TypeOf(counter{}).PkgPath()))
}
