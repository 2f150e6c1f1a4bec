// Package models provides the system checks that inspect registered models
// and the lifecycle signals connected to them.
package models

import (
	"fmt"

	"github.com/appkit-dev/syscheck/pkg/apps"
	"github.com/appkit-dev/syscheck/pkg/check"
)

const (
	// IDCheckOverridden flags a model whose Check method is hidden by a field.
	IDCheckOverridden = "fields.W162"

	// IDLazySenderNotInstalled flags a receiver waiting on a model that was never registered.
	IDLazySenderNotInstalled = "signals.E001"
)

// ModelSource lists registered models.
type ModelSource interface {
	GetModels() []*apps.Descriptor
}

// CheckAllModels returns a check that runs every model's own Check method,
// or reports the model when that method has been overridden.
func CheckAllModels(source ModelSource) check.Func {
	return func(appLabels check.AppLabels, opts check.Options) []check.Diagnostic {
		var diagnostics []check.Diagnostic

		for _, d := range source.GetModels() {
			if appLabels != nil && !appLabels.Has(d.Meta().AppLabel()) {
				continue
			}

			if checker, ok := d.Checker(); ok {
				diagnostics = append(diagnostics, checker.Check(opts)...)

				continue
			}

			diagnostics = append(diagnostics, check.NewWarning(
				IDCheckOverridden,
				fmt.Sprintf("'check' is a reserved word on Model and cannot be overridden by '%s'.", d.ShadowedBy()),
				d,
			))
		}

		return diagnostics
	}
}
