package check

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/appkit-dev/syscheck/pkg/apps"
	"github.com/appkit-dev/syscheck/pkg/check"
	"github.com/appkit-dev/syscheck/pkg/config"
)

// OutputFormat represents the output format of the check command.
type OutputFormat string

const (
	OutputFormatText  OutputFormat = "text"
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// Validate checks if the output format is valid.
func (o OutputFormat) Validate() error {
	switch o {
	case OutputFormatText, OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: text, table, json, yaml)", o)
	}
}

// Options contains options for the check command.
type Options struct {
	genericiooptions.IOStreams

	// Registry holds the checks to run; defaults to the global registry
	Registry *check.Registry

	// Apps is the model registry; defaults to apps.Default()
	Apps *apps.Registry

	// AppLabels restricts model checks to these applications (positional args)
	AppLabels []string

	Tags         []string
	Deploy       bool
	FailLevel    string
	ListTags     bool
	ListChecks   string
	Databases    []string
	ConfigPath   string
	OutputFormat OutputFormat
	Verbose      bool
	NoColor      bool
	Parallelism  int

	settings  *config.Settings
	failLevel check.Level
	logger    *logrus.Logger
}

// NewOptions creates Options with defaults.
func NewOptions(streams genericiooptions.IOStreams) *Options {
	return &Options{
		IOStreams:    streams,
		FailLevel:    check.LevelError.String(),
		OutputFormat: OutputFormatText,
		Parallelism:  1,
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&o.Tags, "tag", "t", nil,
		"Run only checks labeled with given tag (repeatable)")
	fs.BoolVar(&o.Deploy, "deploy", false,
		"Check deployment settings")
	fs.StringVar(&o.FailLevel, "fail-level", o.FailLevel,
		"Message level that will cause the command to exit with a non-zero status (CRITICAL|ERROR|WARNING|INFO|DEBUG)")
	fs.BoolVar(&o.ListTags, "list-tags", false,
		"List available tags")
	fs.StringVar(&o.ListChecks, "list-checks", "",
		"List checks matching a pattern (name, tag or glob) and exit; defaults to all")
	fs.Lookup("list-checks").NoOptDefVal = "*"
	fs.StringArrayVar(&o.Databases, "database", nil,
		"Run database related checks against these aliases (repeatable)")
	fs.StringVarP(&o.ConfigPath, "config", "c", "",
		"Path to the settings file")
	fs.StringVarP((*string)(&o.OutputFormat), "output", "o", string(o.OutputFormat),
		"Output format (text|table|json|yaml)")
	fs.BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log check execution details")
	fs.BoolVar(&o.NoColor, "no-color", false,
		"Don't colorize the text output")
	fs.IntVar(&o.Parallelism, "parallelism", o.Parallelism,
		"Number of checks to run concurrently")
}

// Complete loads settings, resolves defaults and installs configured apps.
func (o *Options) Complete() error {
	o.logger = logrus.New()
	o.logger.SetOutput(o.ErrOut)
	o.logger.SetLevel(logrus.WarnLevel)

	if o.Verbose {
		o.logger.SetLevel(logrus.DebugLevel)
	}

	if o.Registry == nil {
		o.Registry = check.GetGlobalRegistry()
	}

	if o.Apps == nil {
		o.Apps = apps.Default()
	}

	o.settings = config.Default()

	if o.ConfigPath != "" {
		s, err := config.Load(o.ConfigPath)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		o.settings = s
	}

	if len(o.Databases) == 0 {
		o.Databases = o.settings.Databases
	}

	if err := installApps(o.Apps, o.settings.InstalledApps); err != nil {
		return fmt.Errorf("installing apps: %w", err)
	}

	o.logger.WithField("apps", len(o.settings.InstalledApps)).Debug("settings loaded")

	return nil
}

// Validate checks that all options are valid.
func (o *Options) Validate() error {
	if err := o.OutputFormat.Validate(); err != nil {
		return err
	}

	level, err := check.ParseLevel(o.FailLevel)
	if err != nil {
		return fmt.Errorf("invalid --fail-level: %w", err)
	}

	o.failLevel = level

	for _, tag := range o.Tags {
		if strings.TrimSpace(tag) == "" {
			return errors.New("tag must not be empty")
		}
	}

	for _, label := range o.AppLabels {
		if _, err := o.Apps.GetAppConfig(label); err != nil {
			return err
		}
	}

	if o.Parallelism < 1 {
		return errors.New("parallelism must be greater than 0")
	}

	return nil
}

func (o *Options) colorize() bool {
	return !o.NoColor && !color.NoColor
}

func installApps(registry *apps.Registry, installed []config.InstalledApp) error {
	configs := make([]*apps.AppConfig, len(installed))
	for i, app := range installed {
		configs[i] = apps.NewAppConfig(app.Name, app.Label)
	}

	if err := registry.Populate(configs...); err != nil {
		return err
	}

	for i, app := range installed {
		for _, model := range app.Models {
			if err := registry.Register(configs[i].Label, apps.NewBase(model)); err != nil {
				return err
			}
		}
	}

	return nil
}
