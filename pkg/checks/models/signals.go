package models

import (
	"fmt"

	"github.com/appkit-dev/syscheck/pkg/check"
	"github.com/appkit-dev/syscheck/pkg/signals"
)

// SignalSource exposes the lifecycle signal namespace.
type SignalSource interface {
	Signals() *signals.Namespace
}

// CheckModelSignals returns a check that reports receivers connected to a
// lazily referenced sender that was never registered.
func CheckModelSignals(source SignalSource) check.Func {
	return func(_ check.AppLabels, _ check.Options) []check.Diagnostic {
		var diagnostics []check.Diagnostic

		ns := source.Signals()
		for _, name := range ns.Names() {
			dispatcher, _ := ns.Lookup(name)

			ms, ok := dispatcher.(*signals.ModelSignal)
			if !ok {
				continue
			}

			for _, ref := range ms.UnresolvedReferences() {
				for _, pending := range ref.Receivers {
					diagnostics = append(diagnostics, check.NewError(
						IDLazySenderNotInstalled,
						fmt.Sprintf(
							"%s was connected to the '%s' signal with a lazy reference to the '%s' sender, which has not been installed.",
							describeReceiver(pending.Receiver), name, ref.Reference,
						),
						pending.Receiver.Module(),
					))
				}
			}
		}

		return diagnostics
	}
}

func describeReceiver(r signals.Receiver) string {
	if r.Kind() == signals.KindFunction {
		return fmt.Sprintf("The '%s' function", r.Name())
	}

	return fmt.Sprintf("An instance of the '%s' class", r.Name())
}
