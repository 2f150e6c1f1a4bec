package util

// Option applies configuration to a target.
//
// Example:
//
//	type RunConfig struct {
//	    Tags        []check.Tag
//	    Parallelism int
//	}
//
//	func WithParallelism(n int) util.Option[RunConfig] {
//	    return util.FunctionalOption[RunConfig](func(cfg *RunConfig) {
//	        cfg.Parallelism = n
//	    })
//	}
type Option[T any] interface {
	ApplyTo(target *T)
}

// FunctionalOption wraps a function to implement the Option interface.
type FunctionalOption[T any] func(*T)

// ApplyTo implements the Option interface for FunctionalOption.
func (f FunctionalOption[T]) ApplyTo(target *T) {
	f(target)
}

// ApplyOptions applies a list of options to the target configuration.
// Nil options are skipped.
func ApplyOptions[T any](target *T, opts ...Option[T]) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt.ApplyTo(target)
	}
}
