package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/HaPhanBaoMinh/segbar/internal/bargraph"
	"github.com/HaPhanBaoMinh/segbar/internal/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewSoCCommand() *cobra.Command {
	var cells int
	cmd := &cobra.Command{
		Use:     "soc <voltage>",
		Short:   "Estimate the state of charge of a pack voltage",
		GroupID: gTools,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return pkgerrors.Wrapf(err, "invalid voltage %q", args[0])
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cells") {
				cells = cfg.Cells()
			}
			cells = bargraph.ClampCells(cells)

			soc := bargraph.EstimateSoC(v, cells, cfg.Table())
			fmt.Fprintf(cmd.OutOrStdout(), "%.3f V, %s: %s\n", v, plural(cells, "cell"), socString(soc))
			return nil
		},
	}
	cmd.Flags().IntVarP(&cells, "cells", "c", 1, "cells in series")

	return cmd
}

func NewTableCommand() *cobra.Command {
	var cells int
	cmd := &cobra.Command{
		Use:     "table",
		Short:   "Print the voltage to state of charge table",
		GroupID: gTools,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cells") {
				cells = cfg.Cells()
			}
			cells = bargraph.ClampCells(cells)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "V/CELL\tV/PACK\tSOC\n")
			for _, bp := range cfg.Table() {
				fmt.Fprintf(tw, "%.2f\t%.2f\t%s\n", bp.Voltage, bp.Voltage*float64(cells), socString(bp.Percent/100))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&cells, "cells", "c", 1, "cells in series")

	return cmd
}

func socString(f float64) string {
	s := strconv.FormatFloat(bargraph.Percent(f), 'f', 1, 64) + "%"
	switch {
	case f < 0.2:
		return color.New(color.Bold, color.FgRed).Sprint(s)
	case f < 0.5:
		return color.New(color.Bold, color.FgYellow).Sprint(s)
	default:
		return color.New(color.Bold, color.FgGreen).Sprint(s)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
