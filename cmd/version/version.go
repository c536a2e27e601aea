// Package version prints the build version
package version

import (
	"fmt"

	"fjacquet/camt-fix/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the camt-fix version",
	Annotations: map[string]string{root.SkipConfigAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "camt-fix %s\n", root.Version)
	},
}
