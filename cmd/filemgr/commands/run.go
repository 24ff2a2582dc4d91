package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/filemgr/cmd/filemgr/opts"
	"github.com/walteh/filemgr/pkg/operation"
	"github.com/walteh/filemgr/pkg/pathset"
	"github.com/walteh/filemgr/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// run executes one command and prints what came back
func run(cmd *cobra.Command, o *opts.RootOpts, c operation.Command) error {
	return report(cmd, o, o.Runner.Run(cmd.Context(), c))
}

// report prints res and turns a failed result into ErrReported
func report(cmd *cobra.Command, o *opts.RootOpts, res status.Result) error {
	o.Logger.Result(cmd.Context(), res)
	if !res.Succeeded {
		return errors.Errorf("%s: %w", res.Action, opts.ErrReported)
	}
	return nil
}

// split cuts args at the configured separator into sources and targets
func split(o *opts.RootOpts, args []string) (pathset.Plan, error) {
	return pathset.Resolve(nil, o.Separator(), args)
}

// addDepthFlags binds the recursion flags shared by walking commands
func addDepthFlags(cmd *cobra.Command, recursive *bool, depth *int) {
	cmd.Flags().BoolVarP(recursive, "recursive", "r", false, "walk whole trees")
	cmd.Flags().IntVar(depth, "depth", 0, "walk at most this many levels (wins over --recursive)")
}
