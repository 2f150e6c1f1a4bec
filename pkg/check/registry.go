package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/appkit-dev/syscheck/pkg/util"
)

var (
	ErrUnknownTag     = errors.New("unknown check tag")
	ErrDuplicateCheck = errors.New("check already registered")
)

// Check is a registered check function together with its metadata.
type Check struct {
	Name   string
	Tags   []Tag
	Deploy bool
	Fn     Func
}

// HasTag reports whether the check carries the given tag.
func (c *Check) HasTag(tag Tag) bool {
	return slices.Contains(c.Tags, tag)
}

// Registry stores check functions keyed by name, in registration order.
type Registry struct {
	mu     sync.RWMutex
	checks []*Check
	names  sets.Set[string]
}

func NewRegistry() *Registry {
	return &Registry{
		names: sets.New[string](),
	}
}

// Register adds a check that runs on every invocation.
func (r *Registry) Register(name string, fn Func, tags ...Tag) error {
	return r.register(&Check{Name: name, Fn: fn, Tags: tags})
}

// RegisterDeploy adds a check that only runs when deployment checks are requested.
func (r *Registry) RegisterDeploy(name string, fn Func, tags ...Tag) error {
	return r.register(&Check{Name: name, Fn: fn, Tags: tags, Deploy: true})
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, fn Func, tags ...Tag) {
	if err := r.Register(name, fn, tags...); err != nil {
		panic(err)
	}
}

func (r *Registry) register(c *Check) error {
	if c.Fn == nil {
		return fmt.Errorf("check %q has no function", c.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.names.Has(c.Name) {
		return fmt.Errorf("%w: %q", ErrDuplicateCheck, c.Name)
	}

	r.names.Insert(c.Name)
	r.checks = append(r.checks, c)

	return nil
}

// GetChecks returns the registered checks in registration order.
// Deployment checks are only included when includeDeploy is true.
func (r *Registry) GetChecks(includeDeploy bool) []*Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checks := make([]*Check, 0, len(r.checks))
	for _, c := range r.checks {
		if c.Deploy && !includeDeploy {
			continue
		}

		checks = append(checks, c)
	}

	return checks
}

// TagExists reports whether any visible check carries the tag.
func (r *Registry) TagExists(tag Tag, includeDeploy bool) bool {
	for _, c := range r.GetChecks(includeDeploy) {
		if c.HasTag(tag) {
			return true
		}
	}

	return false
}

// TagsAvailable returns the sorted set of tags carried by visible checks.
func (r *Registry) TagsAvailable(includeDeploy bool) []Tag {
	tags := sets.New[Tag]()
	for _, c := range r.GetChecks(includeDeploy) {
		tags.Insert(c.Tags...)
	}

	list := tags.UnsortedList()
	sort.Slice(list, func(i int, j int) bool {
		return list[i] < list[j]
	})

	return list
}

// RunChecks runs the selected checks and returns their diagnostics
// concatenated in registration order.
func (r *Registry) RunChecks(ctx context.Context, opts ...RunOption) ([]Diagnostic, error) {
	cfg := RunConfig{Parallelism: 1}
	util.ApplyOptions(&cfg, opts...)

	logger := cfg.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	for _, tag := range cfg.Tags {
		if !r.TagExists(tag, cfg.Options.IncludeDeploymentChecks) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
		}
	}

	selected := r.selectChecks(cfg.Tags, cfg.Options.IncludeDeploymentChecks)
	results := make([][]Diagnostic, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Parallelism, 1))

	for i, c := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			log := logger.WithField("check", c.Name)
			log.Debug("running check")

			results[i] = c.Fn(cfg.AppLabels, cfg.Options)

			log.WithField("count", len(results[i])).Debug("check finished")

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running checks: %w", err)
	}

	var diagnostics []Diagnostic
	for _, res := range results {
		diagnostics = append(diagnostics, res...)
	}

	logger.WithFields(logrus.Fields{
		"tags":  cfg.Tags,
		"count": len(diagnostics),
	}).Debug("system checks completed")

	return diagnostics, nil
}

func (r *Registry) selectChecks(tags []Tag, includeDeploy bool) []*Check {
	checks := r.GetChecks(includeDeploy)
	if len(tags) == 0 {
		return checks
	}

	selected := make([]*Check, 0, len(checks))
	for _, c := range checks {
		for _, tag := range tags {
			if c.HasTag(tag) {
				selected = append(selected, c)

				break
			}
		}
	}

	return selected
}
