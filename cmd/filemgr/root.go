package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filemgr/cmd/filemgr/commands"
	"github.com/walteh/filemgr/cmd/filemgr/opts"
	"github.com/walteh/filemgr/pkg/config"
	"github.com/walteh/filemgr/pkg/log"
	"github.com/walteh/filemgr/pkg/operation"
	"github.com/walteh/filemgr/pkg/transfer"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile  string
	debugLogs   bool
	quiet       bool
	force       bool
	followLinks bool
	separator   string
)

// newRootCmd builds the command tree around one shared RootOpts
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "filemgr",
		Short: "Create, copy, move, archive and search files",
		Long: `filemgr manages files from the command line: it creates and deletes
paths, copies and moves them between directories, packs them into archives
and searches their contents.

Commands taking sources and targets split them at a separator word:

  filemgr copy-file notes.txt todo.txt to backup/`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return newRootOpts(cmd, o)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewCreateCmd(o),
		commands.NewDeleteCmd(o),
		commands.NewListCmd(o),
		commands.NewTransferCmd(o, operation.CopyFile),
		commands.NewTransferCmd(o, operation.CopyDir),
		commands.NewTransferCmd(o, operation.MoveFile),
		commands.NewTransferCmd(o, operation.MoveDir),
		commands.NewCompressCmd(o),
		commands.NewDecompressCmd(o),
		commands.NewEntriesCmd(o),
		commands.NewSearchCmd(o),
		commands.NewFindCmd(o),
		commands.NewCatCmd(o),
		commands.NewConfigCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// newRootOpts fills o with the logger, config and runner every command uses
func newRootOpts(cmd *cobra.Command, o *opts.RootOpts) error {
	logger := setupLogging(cmd)
	ctx := log.NewContext(cmd.Context(), logger)

	// Load config
	cfg, err := loadConfig(ctx)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	// Flags win over the config file
	if force {
		cfg.Overwrite = true
	}
	if cmd.Flags().Changed("follow-links") {
		cfg.FollowLinks = &followLinks
	}
	if separator != "" {
		cfg.Separator = separator
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("applying flags: %w", err)
	}

	runOpts := operation.OptionsFromConfig(cfg)
	o.Config = cfg
	o.Logger = logger
	o.Runner = operation.NewRunner(transfer.New(runOpts.Transfer), runOpts)

	cmd.SetContext(ctx)
	return nil
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	if configFile != "" {
		return config.Load(ctx, configFile)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}
	return config.Find(ctx, wd)
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: .filemgr.{yaml,yml,json,hcl} in the working directory)")
	cmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "do not list every affected path")
	cmd.PersistentFlags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	cmd.PersistentFlags().BoolVarP(&followLinks, "follow-links", "L", true, "follow symbolic links to directories (--follow-links=false keeps links as leaves)")
	cmd.PersistentFlags().StringVar(&separator, "separator", "", "word between sources and targets (default from config, else \"to\")")
}

// setupLogging configures zerolog based on flags
func setupLogging(cmd *cobra.Command) *log.Logger {
	level := zerolog.WarnLevel
	if debugLogs {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := log.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), level)
	logger.SetQuiet(quiet)
	zerolog.DefaultContextLogger = logger.Zerolog()
	return logger
}
