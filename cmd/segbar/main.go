package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/HaPhanBaoMinh/segbar/help"
	"github.com/HaPhanBaoMinh/segbar/internal/config"
	"github.com/HaPhanBaoMinh/segbar/internal/infrastructure/power"
)

var (
	logLevel   = "info"
	logFile    = help.LogPath()
	configPath = help.ConfigPath()
)

var (
	gWidgets = "Widgets:"
	gTools   = "Tools:"
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

// redirectLogs sends log output to the log file while the UI owns the
// terminal. "-" keeps stderr.
func redirectLogs() (func(), error) {
	if logFile == "" || logFile == "-" {
		return func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open log file %s", logFile)
	}
	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	return func() {
		logrus.SetOutput(os.Stderr)
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file %s: %v\n", logFile, err)
		}
	}, nil
}

func loadConfig() (*config.File, error) {
	f, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(f.LogrusFields()).Debug("config loaded")
	return f, nil
}

func handleCmdError(w io.Writer, err error) {
	if errors.Is(err, power.ErrNoBattery) {
		fmt.Fprintln(w, "\nError: no battery was found on this machine")
		fmt.Fprintln(w, "  - Use '--source mock' to run with synthetic readings")
	} else if errors.Is(err, ErrUnknownSource) {
		fmt.Fprintln(w, "\nError: unknown source")
		fmt.Fprintln(w, "  - level accepts mock, k8s, power or none")
		fmt.Fprintln(w, "  - battery accepts mock, power or none")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(os.Stderr, err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segbar",
		Short: "segbar shows values as segmented bargraph indicators in the terminal",
		Long: `segbar shows values as segmented bargraph indicators in the terminal.

The level widget maps a value in a range onto the lit segments. The battery
widget takes a pack voltage, estimates the state of charge from a per-cell
discharge curve and shows that instead.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&logFile, "log-file", logFile, "log file used while the UI is running, \"-\" for stderr")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")

	for _, i := range []string{gWidgets, gTools} {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewLevelCommand(),
		NewBatteryCommand(),
		NewSoCCommand(),
		NewTableCommand(),
		NewConfigCommand(),
		NewVersionCommand(),
	)

	return cmd
}
