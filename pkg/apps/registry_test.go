package apps_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/appkit-dev/syscheck/pkg/apps"
	"github.com/appkit-dev/syscheck/pkg/check"
	"github.com/appkit-dev/syscheck/pkg/signals"

	. "github.com/onsi/gomega"
)

type Product struct {
	apps.Base

	Title string
}

type ShadowedProduct struct {
	apps.Base

	Check int
}

type ShadowedByFunc struct {
	apps.Base

	Check func() bool
}

type ShadowedByInterface struct {
	apps.Base

	Check any
}

type NilShadow struct {
	apps.Base

	Check any
}

type NoCheck struct {
	meta apps.Meta
}

func (n *NoCheck) ModelMeta() *apps.Meta { return &n.meta }

type FlaggingModel struct {
	apps.Base
}

func (m *FlaggingModel) Check(opts check.Options) []check.Diagnostic {
	return []check.Diagnostic{check.NewError("flag.E001", "flagged", m)}
}

func newRegistry(g *WithT) *apps.Registry {
	r := apps.NewRegistry()
	g.Expect(r.Populate(
		apps.NewAppConfig("shop.catalog", ""),
		apps.NewAppConfig("shop.orders", "orders"),
	)).To(Succeed())

	return r
}

func TestNewAppConfig(t *testing.T) {
	g := NewWithT(t)

	g.Expect(apps.NewAppConfig("shop.catalog", "").Label).To(Equal("catalog"))
	g.Expect(apps.NewAppConfig("billing", "").Label).To(Equal("billing"))
	g.Expect(apps.NewAppConfig("shop.catalog", "cat").Label).To(Equal("cat"))
}

func TestRegistry_Populate(t *testing.T) {
	g := NewWithT(t)

	r := newRegistry(g)

	err := r.Populate(apps.NewAppConfig("other.catalog", ""), apps.NewAppConfig("x.orders", ""))
	g.Expect(err).To(HaveOccurred())
	g.Expect(errors.Is(err, apps.ErrDuplicateApp)).To(BeTrue())
	g.Expect(r.GetAppConfigs()).To(HaveLen(2))

	_, err = r.GetAppConfig("missing")
	g.Expect(errors.Is(err, apps.ErrAppNotFound)).To(BeTrue())
}

func TestRegistry_RegisterClassifiesCheck(t *testing.T) {
	g := NewWithT(t)

	r := newRegistry(g)

	tests := []struct {
		name        string
		model       apps.Model
		wantGenuine bool
		wantShadow  string
	}{
		{name: "base check", model: &Product{}, wantGenuine: true},
		{name: "overriding method", model: &FlaggingModel{}, wantGenuine: true},
		{name: "shadowed by int field", model: &ShadowedProduct{}, wantShadow: "int"},
		{name: "shadowed by func field", model: &ShadowedByFunc{}, wantShadow: "func() bool"},
		{name: "shadowed by interface holding string", model: &ShadowedByInterface{Check: "yes"}, wantShadow: "string"},
		{name: "shadowed by nil interface", model: &NilShadow{}, wantShadow: "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Expect(r.Register("catalog", tt.model)).To(Succeed())

			d, err := r.GetRegisteredModel("catalog", tt.model.ModelMeta().ObjectName)
			g.Expect(err).ToNot(HaveOccurred())

			_, genuine := d.Checker()
			g.Expect(genuine).To(Equal(tt.wantGenuine))
			g.Expect(d.ShadowedBy()).To(Equal(tt.wantShadow))
		})
	}
}

func TestRegistry_RegisterRejects(t *testing.T) {
	g := NewWithT(t)

	r := newRegistry(g)

	err := r.Register("catalog", &NoCheck{})
	g.Expect(errors.Is(err, apps.ErrMissingCheck)).To(BeTrue())

	err = r.Register("missing", &Product{})
	g.Expect(errors.Is(err, apps.ErrAppNotFound)).To(BeTrue())

	g.Expect(r.Register("catalog", &Product{})).To(Succeed())

	err = r.Register("catalog", apps.NewBase("product"))
	g.Expect(errors.Is(err, apps.ErrDuplicateModel)).To(BeTrue())

	g.Expect(func() { r.MustRegister("catalog", &Product{}) }).To(Panic())
}

func TestRegistry_GetModelsOrder(t *testing.T) {
	g := NewWithT(t)

	r := newRegistry(g)

	r.MustRegister("orders", apps.NewBase("Order"))
	r.MustRegister("catalog", &Product{})
	r.MustRegister("orders", apps.NewBase("Invoice"))

	var labels []string
	for _, d := range r.GetModels() {
		labels = append(labels, d.Label())
	}

	g.Expect(labels).To(Equal([]string{"catalog.Product", "orders.Order", "orders.Invoice"}))

	d, err := r.GetRegisteredModel("orders", "INVOICE")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(d.Meta().AppConfig.Name).To(Equal("shop.orders"))

	_, err = r.GetRegisteredModel("orders", "Refund")
	g.Expect(errors.Is(err, apps.ErrModelNotFound)).To(BeTrue())
}

func TestRegistry_ResolvesLazySignals(t *testing.T) {
	g := NewWithT(t)

	r := newRegistry(g)

	var got []string
	receiver := signals.Func(func(e signals.Event) any {
		got = append(got, e.Sender)

		return nil
	})

	g.Expect(r.Signals().PostSave.Connect(receiver, "orders.order")).To(Succeed())
	g.Expect(r.Signals().PostSave.UnresolvedReferences()).To(HaveLen(1))

	r.MustRegister("orders", apps.NewBase("Order"))
	g.Expect(r.Signals().PostSave.UnresolvedReferences()).To(BeEmpty())

	r.Signals().PostSave.Send("orders.Order", nil)
	g.Expect(got).To(Equal([]string{"orders.Order"}))

	// registered senders connect immediately under their canonical label
	g.Expect(r.Signals().PreSave.Connect(receiver, "orders.ORDER")).To(Succeed())
	g.Expect(r.Signals().PreSave.HasListeners("orders.Order")).To(BeTrue())
}

func TestDefaultRegistryIsShared(t *testing.T) {
	g := NewWithT(t)

	g.Expect(apps.Default()).To(BeIdenticalTo(apps.Default()))
}

func TestRegistry_RejectedModelIsUnchanged(t *testing.T) {
	g := NewWithT(t)

	r := newRegistry(g)
	r.MustRegister("catalog", &Product{})

	duplicate := &Product{}
	err := r.Register("catalog", duplicate)
	g.Expect(errors.Is(err, apps.ErrDuplicateModel)).To(BeTrue())
	g.Expect(duplicate.ModelMeta()).To(Equal(&apps.Meta{}))

	order := apps.NewBase("Order")
	r.MustRegister("orders", order)

	err = r.Register("catalog", order)
	g.Expect(errors.Is(err, apps.ErrModelInstalled)).To(BeTrue())
	g.Expect(order.Label()).To(Equal("orders.Order"))

	_, err = r.GetRegisteredModel("catalog", "Order")
	g.Expect(errors.Is(err, apps.ErrModelNotFound)).To(BeTrue())
}

func TestRegistry_ConcurrentLazyConnect(t *testing.T) {
	g := NewWithT(t)

	r := newRegistry(g)
	receiver := signals.Func(func(signals.Event) any { return nil })

	const count = 200

	var wg sync.WaitGroup
	errs := make(chan error, 2*count)

	for i := range count {
		name := fmt.Sprintf("Model%d", i)

		wg.Add(2)

		go func() {
			defer wg.Done()

			errs <- r.Signals().PostSave.Connect(receiver, "orders."+name)
		}()

		go func() {
			defer wg.Done()

			errs <- r.Register("orders", apps.NewBase(name))
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		g.Expect(err).ToNot(HaveOccurred())
	}

	g.Expect(r.Signals().PostSave.UnresolvedReferences()).To(BeEmpty())

	for i := range count {
		g.Expect(r.Signals().PostSave.HasListeners(fmt.Sprintf("orders.Model%d", i))).To(BeTrue())
	}
}
