package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/filemgr/cmd/filemgr/opts"
	"github.com/walteh/filemgr/pkg/operation"
	"github.com/walteh/filemgr/pkg/status"
)

// NewCompressCmd creates the compress command
func NewCompressCmd(o *opts.RootOpts) *cobra.Command {
	var (
		recursive bool
		depth     int
	)

	cmd := &cobra.Command{
		Use:   "compress SOURCE... SEP ARCHIVE",
		Short: "Pack files and directories into one archive",
		Long: `Compress packs every SOURCE into ARCHIVE. The format follows the
archive name (.zip, .tar, .tar.gz/.tgz, .tar.zst/.tzst), falling back to the
configured format. Directories are stored under their own base name.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := split(o, args)
			if err != nil {
				return report(cmd, o, status.Failed("compress", err))
			}
			return run(cmd, o, operation.Command{
				Kind:      operation.Compress,
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

// NewDecompressCmd creates the decompress command
func NewDecompressCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress ARCHIVE... SEP DIR...",
		Short: "Extract archives into directories",
		Long: `Decompress extracts each ARCHIVE below a target DIR, pairing them the
same way copy does. An archive holding any member that would land outside DIR
is rejected before anything is written.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := split(o, args)
			if err != nil {
				return report(cmd, o, status.Failed("decompress", err))
			}
			return run(cmd, o, operation.Command{
				Kind:    operation.Decompress,
				Sources: plan.Sources,
				Targets: plan.Targets,
			})
		},
	}

	return cmd
}

// NewEntriesCmd creates the entries command
func NewEntriesCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries ARCHIVE...",
		Short: "List the members of archives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, operation.Command{
				Kind:    operation.ListEntries,
				Sources: args,
			})
		},
	}

	return cmd
}
