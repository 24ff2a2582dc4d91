package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/filemgr/cmd/filemgr/opts"
	"github.com/walteh/filemgr/pkg/operation"
	"github.com/walteh/filemgr/pkg/status"
)

// NewCreateCmd creates the create command
func NewCreateCmd(o *opts.RootOpts) *cobra.Command {
	var dir bool

	cmd := &cobra.Command{
		Use:   "create PATH...",
		Short: "Create empty files or directories",
		Long: `Create makes each PATH as an empty file, or as a directory with --dir.
Missing parent directories are created. A path that already exists with the
same kind is left alone.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, operation.Command{
				Kind:      operation.Create,
				Sources:   args,
				Directory: dir,
			})
		},
	}

	cmd.Flags().BoolVar(&dir, "dir", false, "create directories instead of files")
	return cmd
}

// NewDeleteCmd creates the delete command
func NewDeleteCmd(o *opts.RootOpts) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "delete PATH...",
		Short: "Delete files and directories",
		Long: `Delete removes each PATH. Directories that are not empty need
--recursive. Symbolic links are removed, never followed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, operation.Command{
				Kind:      operation.Delete,
				Sources:   args,
				Recursive: recursive,
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "delete directory contents too")
	return cmd
}

// NewTransferCmd creates one of copy-file, copy-dir, move-file and move-dir
func NewTransferCmd(o *opts.RootOpts, kind operation.Kind) *cobra.Command {
	var (
		recursive bool
		depth     int
	)

	verb, noun := "Copy", "files"
	if kind == operation.MoveFile || kind == operation.MoveDir {
		verb = "Move"
	}
	if kind == operation.CopyDir || kind == operation.MoveDir {
		noun = "directories"
	}

	cmd := &cobra.Command{
		Use:   kind.String() + " SOURCE... SEP TARGET...",
		Short: verb + " " + noun + " into target directories",
		Long: verb + ` ` + noun + ` into target directories. Sources and targets are split
at the separator word ("to" unless configured otherwise):

  filemgr ` + kind.String() + ` a b to out/       both into out/
  filemgr ` + kind.String() + ` a to out1/ out2/  a into each target
  filemgr ` + kind.String() + ` a b to x/ y/      a into x/, b into y/

Directories are walked to --depth levels; without --recursive or --depth
only their immediate children are transferred.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := split(o, args)
			if err != nil {
				return report(cmd, o, status.Failed(strings.ToLower(verb), err))
			}
			return run(cmd, o, operation.Command{
				Kind:      kind,
				Sources:   plan.Sources,
				Targets:   plan.Targets,
				Recursive: recursive,
				Depth:     depth,
			})
		},
	}

	addDepthFlags(cmd, &recursive, &depth)
	return cmd
}
