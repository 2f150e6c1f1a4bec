package models

import (
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/appkit-dev/syscheck/pkg/apps"
	"github.com/appkit-dev/syscheck/pkg/check"
)

const (
	NameAllModels    = "models.all"
	NameModelSignals = "models.signals"
)

// Checks returns the model checks bound to models, in registration order.
func Checks(models *apps.Registry) []check.Check {
	return []check.Check{
		{Name: NameAllModels, Fn: CheckAllModels(models), Tags: []check.Tag{check.TagModels}},
		{Name: NameModelSignals, Fn: CheckModelSignals(models), Tags: []check.Tag{check.TagModels, check.TagSignals}},
	}
}

// Register adds the model checks to registry, bound to the given models.
func Register(registry *check.Registry, models *apps.Registry) error {
	var errs []error
	for _, c := range Checks(models) {
		errs = append(errs, registry.Register(c.Name, c.Fn, c.Tags...))
	}

	return utilerrors.NewAggregate(errs)
}

// MustRegisterDefault adds the model checks, bound to apps.Default(), to the
// global check registry. Panics if they are already registered.
func MustRegisterDefault() {
	for _, c := range Checks(apps.Default()) {
		check.MustRegisterCheck(c.Name, c.Fn, c.Tags...)
	}
}
