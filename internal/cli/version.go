package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=".
var Version = "0.1.0"

type VersionOptions struct{}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd) },
	}
	return cmd
}

func (o *VersionOptions) Run(cmd *cobra.Command) error {
	fmt.Fprintf(cmd.OutOrStdout(), "yamlschema version %s\n", Version)

	return nil
}
