package check_test

import (
	"testing"

	"github.com/appkit-dev/syscheck/pkg/check"

	. "github.com/onsi/gomega"
)

type labeled struct{}

func (labeled) Label() string { return "catalog.Product" }

func TestDiagnosticString(t *testing.T) {
	g := NewWithT(t)

	tests := []struct {
		name string
		diag check.Diagnostic
		want string
	}{
		{
			name: "labeled object with id",
			diag: check.NewWarning("fields.W162", "bad check", labeled{}),
			want: "catalog.Product: (fields.W162) bad check",
		},
		{
			name: "string object",
			diag: check.NewError("signals.E001", "lazy sender", "shop.handlers"),
			want: "shop.handlers: (signals.E001) lazy sender",
		},
		{
			name: "no object no id",
			diag: check.NewInfo("", "just saying", nil),
			want: "?: just saying",
		},
		{
			name: "with hint",
			diag: check.NewCritical("core.C001", "broken", nil).WithHint("fix it"),
			want: "?: (core.C001) broken\n\tHINT: fix it",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Expect(tt.diag.String()).To(Equal(tt.want))
		})
	}
}

func TestDiagnosticIsSerious(t *testing.T) {
	g := NewWithT(t)

	g.Expect(check.NewError("a", "m", nil).IsSerious()).To(BeTrue())
	g.Expect(check.NewCritical("a", "m", nil).IsSerious()).To(BeTrue())
	g.Expect(check.NewWarning("a", "m", nil).IsSerious()).To(BeFalse())
	g.Expect(check.NewWarning("a", "m", nil).IsSerious(check.LevelWarning)).To(BeTrue())
	g.Expect(check.NewDebug("a", "m", nil).IsSerious(check.LevelInfo)).To(BeFalse())
}

func TestDiagnosticIsSilenced(t *testing.T) {
	g := NewWithT(t)

	d := check.NewWarning("fields.W162", "m", nil)

	g.Expect(d.IsSilenced([]string{"fields.W162"})).To(BeTrue())
	g.Expect(d.IsSilenced([]string{"signals.E001"})).To(BeFalse())
	g.Expect(d.IsSilenced(nil)).To(BeFalse())
}

func TestDiagnosticWithHintDoesNotMutate(t *testing.T) {
	g := NewWithT(t)

	d := check.NewError("x.E001", "m", nil)
	hinted := d.WithHint("h")

	g.Expect(d.Hint).To(BeEmpty())
	g.Expect(hinted.Hint).To(Equal("h"))
}
