package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/filemgr/cmd/filemgr/opts"
	"github.com/walteh/filemgr/pkg/operation"
	"github.com/walteh/filemgr/pkg/status"
	"github.com/walteh/filemgr/pkg/walk"
)

// NewListCmd creates the list command
func NewListCmd(o *opts.RootOpts) *cobra.Command {
	var (
		recursive bool
		depth     int
		tree      bool
	)

	cmd := &cobra.Command{
		Use:   "list PATH...",
		Short: "List directory contents",
		Long: `List prints the entries below each PATH, directories with a trailing
separator. --tree draws every directory PATH as a tree instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := operation.Command{
				Kind:      operation.List,
				Sources:   args,
				Recursive: recursive,
				Depth:     depth,
			}
			if tree {
				return drawTrees(cmd, o, c)
			}
			return run(cmd, o, c)
		},
	}

	addDepthFlags(cmd, &recursive, &depth)
	cmd.Flags().BoolVar(&tree, "tree", false, "draw directories as trees")
	return cmd
}

// 🌳 drawTrees renders each root with Logger.Tree; what was collected
// before a walk error is still drawn
func drawTrees(cmd *cobra.Command, o *opts.RootOpts, c operation.Command) error {
	ctx := cmd.Context()
	res := status.NewResult("list")
	wopts := walk.Options{
		Depth:       c.WalkDepth(),
		FollowLinks: o.Config.FollowsLinks(),
		Ignore:      o.Config.IgnorePatterns,
	}

	drawn := 0
	for _, root := range c.Sources {
		entries, err := walk.Collect(ctx, root, wopts)
		res.Fail(err)
		if err != nil && len(entries) == 0 {
			continue
		}
		if err := o.Logger.Tree(root, entries); err != nil {
			res.Fail(err)
			continue
		}
		drawn++
	}

	res.Message = fmt.Sprintf("list: %d tree(s)", drawn)
	if len(res.Errors) > 0 {
		res.Message = ""
	}
	return report(cmd, o, res.Finish())
}
