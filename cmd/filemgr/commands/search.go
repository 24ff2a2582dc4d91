package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/filemgr/cmd/filemgr/opts"
	"github.com/walteh/filemgr/pkg/operation"
)

// NewSearchCmd creates the search command
func NewSearchCmd(o *opts.RootOpts) *cobra.Command {
	var (
		dir       bool
		recursive bool
		depth     int
	)

	cmd := &cobra.Command{
		Use:   "search WORD PATH...",
		Short: "Find lines containing a whole word",
		Long: `Search prints path:line:text for every line of PATH holding WORD as a
whole word. With --dir every PATH is a directory whose files are searched.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := operation.SearchFile
			if dir {
				kind = operation.SearchDir
			}
			return run(cmd, o, operation.Command{
				Kind:      kind,
				Word:      args[0],
				Sources:   args[1:],
				Recursive: recursive,
				Depth:     depth,
			})
		},
	}

	cmd.Flags().BoolVar(&dir, "dir", false, "search the files of directories")
	addDepthFlags(cmd, &recursive, &depth)
	return cmd
}

// NewFindCmd creates the find command
func NewFindCmd(o *opts.RootOpts) *cobra.Command {
	var (
		recursive bool
		depth     int
	)

	cmd := &cobra.Command{
		Use:   "find PATTERN DIR...",
		Short: "Find entries by name",
		Long: `Find prints the entries below each DIR whose name matches the glob
PATTERN. A PATTERN holding a slash is matched against the path relative to
DIR, and ** crosses directories.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, operation.Command{
				Kind:      operation.FindName,
				Word:      args[0],
				Sources:   args[1:],
				Recursive: recursive,
				Depth:     depth,
			})
		},
	}

	addDepthFlags(cmd, &recursive, &depth)
	return cmd
}

// NewCatCmd creates the cat command
func NewCatCmd(o *opts.RootOpts) *cobra.Command {
	var start, stop int

	cmd := &cobra.Command{
		Use:   "cat FILE...",
		Short: "Print numbered lines of files",
		Long: `Cat prints line:text for the lines of each FILE from --start through
--stop. A zero --stop reads to the end.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, operation.Command{
				Kind:    operation.ReadLines,
				Sources: args,
				Start:   start,
				Stop:    stop,
			})
		},
	}

	cmd.Flags().IntVar(&start, "start", 1, "first line to print")
	cmd.Flags().IntVar(&stop, "stop", 0, "last line to print, 0 for the end")
	return cmd
}
