package main

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	corev1 "k8s.io/api/core/v1"

	"github.com/HaPhanBaoMinh/segbar/help"
	"github.com/HaPhanBaoMinh/segbar/internal/app"
	"github.com/HaPhanBaoMinh/segbar/internal/bargraph"
	"github.com/HaPhanBaoMinh/segbar/internal/config"
	"github.com/HaPhanBaoMinh/segbar/internal/domain"
	"github.com/HaPhanBaoMinh/segbar/internal/infrastructure/httpapi"
	kk "github.com/HaPhanBaoMinh/segbar/internal/infrastructure/k8s"
	"github.com/HaPhanBaoMinh/segbar/internal/infrastructure/mock"
	"github.com/HaPhanBaoMinh/segbar/internal/infrastructure/power"
)

var ErrUnknownSource = pkgerrors.New("unknown source")

// batterySource is a local battery reader that can be checked before the UI
// takes over the terminal.
type batterySource interface {
	domain.MessageSource
	Probe() error
}

// replaced in tests
var newPowerSource = func(mode power.Mode, index int, interval time.Duration) batterySource {
	return power.New(mode, index, interval)
}

func powerSource(mode power.Mode, index int, interval time.Duration) (app.Source, error) {
	src := newPowerSource(mode, index, interval)
	if err := src.Probe(); err != nil {
		return app.Source{}, pkgerrors.Wrap(err, "power source")
	}
	return app.Source{Name: "power", MessageSource: src}, nil
}

// widgetFlags are shared by the level and battery commands. Unset flags fall
// back to the config file.
type widgetFlags struct {
	source       string
	interval     time.Duration
	listen       string
	palette      string
	step         float64
	batteryIndex int
	seed         int64
	print        bool
}

func (wf *widgetFlags) register(cmd *cobra.Command, defaultSource string) {
	f := cmd.Flags()
	f.StringVarP(&wf.source, "source", "s", defaultSource, "where values come from")
	f.DurationVar(&wf.interval, "interval", 500*time.Millisecond, "polling interval of the source")
	f.StringVar(&wf.listen, "listen", "", "serve the HTTP control API on this address, e.g. 127.0.0.1:8377")
	f.StringVar(&wf.palette, "palette", "bands", "segment colors (bands, blend)")
	f.Float64Var(&wf.step, "step", 0, "value change per arrow key, 0 picks one from the widget")
	f.IntVar(&wf.batteryIndex, "battery-index", 0, "battery to read with --source power")
	f.Int64Var(&wf.seed, "seed", 0, "seed for --source mock, 0 picks one at random")
	f.BoolVar(&wf.print, "print", false, "print the emitted values to stdout on exit")
}

func (wf *widgetFlags) resolve(cmd *cobra.Command, cfg *config.File) {
	f := cmd.Flags()
	if !f.Changed("source") {
		wf.source = cfg.Source()
	}
	if !f.Changed("interval") {
		wf.interval = cfg.Interval()
	}
	if !f.Changed("listen") {
		wf.listen = cfg.Listen()
	}
}

func (wf *widgetFlags) options(cmd *cobra.Command, cfg *config.File, args []string) (bargraph.Options, error) {
	o, err := bargraph.ParseArgs(cfg.Options(bargraph.DefaultOptions()), args)
	if err != nil {
		return o, err
	}
	if cmd.Flags().Changed("palette") {
		p, err := bargraph.ParsePalette(wf.palette)
		if err != nil {
			return o, err
		}
		o.Palette = p
	}
	return o, nil
}

func (wf *widgetFlags) mockSource(mode mock.Mode, cells int) app.Source {
	src := mock.New(mode, wf.interval, cells)
	if wf.seed != 0 {
		src = src.WithSeed(wf.seed)
	}
	return app.Source{Name: "mock", MessageSource: src}
}

// withServer adds the HTTP control surface as both a source and the
// snapshot sink when --listen is set.
func (wf *widgetFlags) withServer(sources []app.Source) ([]app.Source, domain.SnapshotSink) {
	if wf.listen == "" {
		return sources, nil
	}
	srv := httpapi.New(wf.listen)
	return append(sources, app.Source{Name: "http " + wf.listen, MessageSource: srv}), srv
}

type levelFlags struct {
	widgetFlags
	min, max    float64
	node        string
	resource    string
	kubeconfig  string
	kubeContext string
}

func NewLevelCommand() *cobra.Command {
	lf := &levelFlags{}
	cmd := &cobra.Command{
		Use:     "level [segments] [horizontal]",
		Short:   "Show a value in a range as a segmented bar",
		GroupID: gWidgets,
		Long: `Show a value in a range as a segmented bar.

Values outside the range are clamped. The emitted value is the clamped input.

Sources:
  mock   a random walk inside [0, 1]
  k8s    node utilization from metrics-server (--node, --resource)
  power  charge of the local battery as a fraction of its full capacity
  none   arrow keys and the HTTP API only`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, sources, sink, err := lf.setup(cmd, cfg, args)
			if err != nil {
				return err
			}
			return runWidget(w, sources, sink, lf.step, lf.print, cmd.OutOrStdout())
		},
	}

	lf.addFlags(cmd)

	return cmd
}

func (lf *levelFlags) addFlags(cmd *cobra.Command) {
	lf.register(cmd, "mock")
	f := cmd.Flags()
	f.Float64Var(&lf.min, "min", 0, "lower end of the range")
	f.Float64Var(&lf.max, "max", 1, "upper end of the range")
	f.StringVar(&lf.node, "node", "", "node to watch with --source k8s, empty for the whole cluster")
	f.StringVar(&lf.resource, "resource", "cpu", "resource to watch with --source k8s (cpu, memory)")
	f.StringVar(&lf.kubeconfig, "kubeconfig", "", "path to kubeconfig")
	f.StringVar(&lf.kubeContext, "context", "", "kube context")
}

func (lf *levelFlags) setup(cmd *cobra.Command, cfg *config.File, args []string) (*bargraph.Level, []app.Source, domain.SnapshotSink, error) {
	lf.resolve(cmd, cfg)
	f := cmd.Flags()
	if !f.Changed("node") {
		lf.node = cfg.Node()
	}
	if !f.Changed("kubeconfig") {
		lf.kubeconfig = cfg.Kubeconfig()
	}
	if lf.kubeconfig == "" {
		lf.kubeconfig = help.KubeconfigPath()
	}

	o, err := lf.options(cmd, cfg, args)
	if err != nil {
		return nil, nil, nil, err
	}
	if f.Changed("min") {
		o.Range.Min = lf.min
	}
	if f.Changed("max") {
		o.Range.Max = lf.max
	}
	if o.Range.Min >= o.Range.Max {
		return nil, nil, nil, pkgerrors.Errorf("min must be below max, got [%g, %g]", o.Range.Min, o.Range.Max)
	}

	var sources []app.Source
	switch lf.source {
	case "mock":
		sources = append(sources, lf.mockSource(mock.Level, 1))
	case "k8s":
		res := corev1.ResourceName(lf.resource)
		if res != corev1.ResourceCPU && res != corev1.ResourceMemory {
			return nil, nil, nil, pkgerrors.Errorf("unsupported resource %q (want cpu|memory)", lf.resource)
		}
		src, err := kk.New(lf.kubeconfig, lf.kubeContext)
		if err != nil {
			return nil, nil, nil, err
		}
		src.Node = lf.node
		src.Resource = res
		src.Interval = lf.interval
		name := "k8s " + string(res)
		if lf.node != "" {
			name += " " + lf.node
		}
		sources = append(sources, app.Source{Name: name, MessageSource: src})
	case "power":
		src, err := powerSource(power.Charge, lf.batteryIndex, lf.interval)
		if err != nil {
			return nil, nil, nil, err
		}
		sources = append(sources, src)
	case "none":
	default:
		return nil, nil, nil, pkgerrors.Wrapf(ErrUnknownSource, "%q for level", lf.source)
	}
	sources, sink := lf.withServer(sources)

	return bargraph.NewLevel(o), sources, sink, nil
}

type batteryFlags struct {
	widgetFlags
	cells   int
	percent bool
}

func NewBatteryCommand() *cobra.Command {
	bf := &batteryFlags{}
	cmd := &cobra.Command{
		Use:     "battery [segments] [horizontal]",
		Short:   "Show the state of charge of a battery pack from its voltage",
		GroupID: gWidgets,
		Long: `Show the state of charge of a battery pack from its voltage.

The pack voltage is divided by the cell count and looked up on the discharge
curve (LiPo unless the config file sets "breakpoints"). The emitted value is
the state of charge as a fraction, or a percentage with --percent.

Sources:
  mock   a pack slowly discharging and starting over when empty
  power  voltage of the local battery
  none   arrow keys and the HTTP API only`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, sources, sink, err := bf.setup(cmd, cfg, args)
			if err != nil {
				return err
			}
			return runWidget(w, sources, sink, bf.step, bf.print, cmd.OutOrStdout())
		},
	}

	bf.addFlags(cmd)

	return cmd
}

func (bf *batteryFlags) addFlags(cmd *cobra.Command) {
	bf.register(cmd, "mock")
	f := cmd.Flags()
	f.IntVarP(&bf.cells, "cells", "c", 1, "cells in series")
	f.BoolVar(&bf.percent, "percent", false, "emit 0..100 instead of 0..1")
}

func (bf *batteryFlags) setup(cmd *cobra.Command, cfg *config.File, args []string) (*bargraph.Battery, []app.Source, domain.SnapshotSink, error) {
	bf.resolve(cmd, cfg)
	o, err := bf.options(cmd, cfg, args)
	if err != nil {
		return nil, nil, nil, err
	}
	f := cmd.Flags()
	if f.Changed("cells") {
		o.Cells = bf.cells
	}
	if f.Changed("percent") {
		o.PercentOutput = bf.percent
	}
	o.Cells = bargraph.ClampCells(o.Cells)

	var sources []app.Source
	switch bf.source {
	case "mock":
		sources = append(sources, bf.mockSource(mock.Discharge, o.Cells))
	case "power":
		src, err := powerSource(power.Voltage, bf.batteryIndex, bf.interval)
		if err != nil {
			return nil, nil, nil, err
		}
		sources = append(sources, src)
	case "none":
	default:
		return nil, nil, nil, pkgerrors.Wrapf(ErrUnknownSource, "%q for battery", bf.source)
	}
	sources, sink := bf.withServer(sources)

	return bargraph.NewBattery(o), sources, sink, nil
}

func runWidget(w bargraph.Widget, sources []app.Source, sink domain.SnapshotSink, step float64, printOut bool, out io.Writer) error {
	closeLogs, err := redirectLogs()
	if err != nil {
		return err
	}
	defer closeLogs()

	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
	}
	logrus.WithFields(logrus.Fields{
		"widget":  w.Kind(),
		"sources": names,
		"state":   w.State(),
	}).Info("starting")

	m := app.New(w, app.Options{Sources: sources, Sink: sink, Step: step})
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return pkgerrors.Wrap(err, "ui exited with an error")
	}

	if fm, ok := final.(app.Model); ok {
		logrus.WithField("emitted", len(fm.Outlet())).Info("stopped")
		if printOut {
			for _, v := range fm.Outlet() {
				fmt.Fprintln(out, v)
			}
		}
	}
	return nil
}
