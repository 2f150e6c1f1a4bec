package check

import (
	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/appkit-dev/syscheck/pkg/apps"
	"github.com/appkit-dev/syscheck/pkg/check"
	cmdcheck "github.com/appkit-dev/syscheck/pkg/cmd/check"
)

const (
	cmdName  = "check [app_label...]"
	cmdShort = "Inspect the installed apps for common problems"
	cmdLong  = `
The check command runs the registered system checks against the installed
applications and their models, and reports errors and warnings found.

Checks can be restricted to a set of applications by passing their labels,
and to a set of tags with --tag.
`
	cmdExample = `
  # Run all checks
  syscheck check --config settings.yaml

  # Only run model checks for the catalog app
  syscheck check catalog --tag models

  # Fail on warnings too, and print JSON
  syscheck check --fail-level WARNING -o json

  # List the tags that can be selected
  syscheck check --list-tags

  # List the checks tagged signals
  syscheck check --list-checks=signals
`
)

// AddCommand adds the check command to root. Checks are taken from registry
// and run against models.
func AddCommand(root *cobra.Command, registry *check.Registry, models *apps.Registry) {
	streams := genericiooptions.IOStreams{
		In:     root.InOrStdin(),
		Out:    root.OutOrStdout(),
		ErrOut: root.ErrOrStderr(),
	}

	o := cmdcheck.NewOptions(streams)
	o.Registry = registry
	o.Apps = models

	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         cmdShort,
		Long:          cmdLong,
		Example:       cmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.AppLabels = args

			//nolint:wrapcheck // Errors from Complete and Validate are already contextualized
			if err := o.Complete(); err != nil {
				return err
			}
			//nolint:wrapcheck // Errors from Validate are already contextualized
			if err := o.Validate(); err != nil {
				return err
			}

			return o.Run(cmd.Context())
		},
	}

	o.AddFlags(cmd.Flags())
	root.AddCommand(cmd)
}
