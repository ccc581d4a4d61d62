package main

import (
	"fmt"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaPhanBaoMinh/segbar/internal/config"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage the config file",
		GroupID: gTools,
	}
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the default settings",
		Long: `Write a config file holding the default settings.

The file goes to the path given by --config. The discharge curve is written
out in full so it can be replaced by the curve of another chemistry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return pkgerrors.Errorf("%s already exists, use --force to overwrite it", configPath)
			}
			if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
				return pkgerrors.Wrapf(err, "failed to create directory for %s", configPath)
			}

			f := config.NewFileFromConfig(config.Defaults(), configPath)
			if err := f.Save(); err != nil {
				return err
			}
			logrus.WithFields(f.LogrusFields()).Debug("config written")
			fmt.Fprintln(cmd.OutOrStdout(), configPath)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
