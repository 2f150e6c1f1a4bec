package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	checkcmd "github.com/appkit-dev/syscheck/cmd/check"
	"github.com/appkit-dev/syscheck/pkg/apps"
	"github.com/appkit-dev/syscheck/pkg/check"
	"github.com/appkit-dev/syscheck/pkg/checks/models"
)

func main() {
	models.MustRegisterDefault()

	root := &cobra.Command{
		Use:   "syscheck",
		Short: "System checks for installed apps and models",
	}

	checkcmd.AddCommand(root, check.GetGlobalRegistry(), apps.Default())

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
