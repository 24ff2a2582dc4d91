package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/filemgr/cmd/filemgr/opts"
	"github.com/walteh/filemgr/pkg/config"
)

// NewConfigCmd creates the config command
func NewConfigCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Logger.Header("configuration")
			if o.Config.Location() == "" {
				o.Logger.Infof("none of %s found", strings.Join(config.DefaultNames, ", "))
			}
			o.Logger.Info(o.Config.String())
			return nil
		},
	}

	return cmd
}
