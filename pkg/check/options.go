package check

import (
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/appkit-dev/syscheck/pkg/util"
)

// AppLabels restricts a check to the applications with the given labels.
// A nil set means no restriction; an empty set selects nothing.
type AppLabels = sets.Set[string]

// Options are passed through unchanged to every check function.
type Options struct {
	// Databases names the database aliases checks may inspect
	Databases []string

	// IncludeDeploymentChecks is true when deployment-only checks are running
	IncludeDeploymentChecks bool
}

// Func is the signature of a check function.
type Func func(appLabels AppLabels, opts Options) []Diagnostic

// RunConfig holds the settings of a single RunChecks invocation.
type RunConfig struct {
	AppLabels   AppLabels
	Tags        []Tag
	Options     Options
	Parallelism int
	Logger      logrus.FieldLogger
}

type RunOption = util.Option[RunConfig]

// WithAppLabels restricts model-scoped checks to the given applications.
func WithAppLabels(labels ...string) RunOption {
	return util.FunctionalOption[RunConfig](func(cfg *RunConfig) {
		cfg.AppLabels = sets.New[string](labels...)
	})
}

// WithTags limits the run to checks carrying at least one of the given tags.
func WithTags(tags ...Tag) RunOption {
	return util.FunctionalOption[RunConfig](func(cfg *RunConfig) {
		cfg.Tags = append(cfg.Tags, tags...)
	})
}

// WithDeploymentChecks includes checks registered with RegisterDeploy.
func WithDeploymentChecks(enabled bool) RunOption {
	return util.FunctionalOption[RunConfig](func(cfg *RunConfig) {
		cfg.Options.IncludeDeploymentChecks = enabled
	})
}

// WithDatabases sets the database aliases passed to checks.
func WithDatabases(databases ...string) RunOption {
	return util.FunctionalOption[RunConfig](func(cfg *RunConfig) {
		cfg.Options.Databases = append(cfg.Options.Databases, databases...)
	})
}

// WithParallelism sets how many checks may run at once. Values below 1 mean 1.
func WithParallelism(n int) RunOption {
	return util.FunctionalOption[RunConfig](func(cfg *RunConfig) {
		cfg.Parallelism = n
	})
}

func WithLogger(logger logrus.FieldLogger) RunOption {
	return util.FunctionalOption[RunConfig](func(cfg *RunConfig) {
		cfg.Logger = logger
	})
}
