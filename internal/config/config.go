package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/HaPhanBaoMinh/segbar/internal/bargraph"
	"github.com/HaPhanBaoMinh/segbar/internal/domain"
	"github.com/HaPhanBaoMinh/segbar/internal/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	Segments:   ptr.To(10),
	Horizontal: ptr.To(false),
	Min:        ptr.To(0.0),
	Max:        ptr.To(1.0),
	Cells:      ptr.To(1),
	Percent:    ptr.To(false),
	Palette:    ptr.To("bands"),
	Source:     ptr.To("mock"),
	Interval:   ptr.To("500ms"),
	Listen:     ptr.To(""),
	Node:       ptr.To(""),
	Kubeconfig: ptr.To(""),
}

// Defaults returns a fully populated copy of the default config, with the
// LiPo curve spelled out so it can be edited.
func Defaults() *RawFileConfig {
	d := defaultFileConfig
	bps := make([][2]float64, 0, len(bargraph.LiPoTable))
	for _, bp := range bargraph.LiPoTable {
		bps = append(bps, [2]float64{bp.Voltage, bp.Percent})
	}
	return &RawFileConfig{
		Segments:    ptr.To(*d.Segments),
		Horizontal:  ptr.To(*d.Horizontal),
		Min:         ptr.To(*d.Min),
		Max:         ptr.To(*d.Max),
		Cells:       ptr.To(*d.Cells),
		Percent:     ptr.To(*d.Percent),
		Palette:     ptr.To(*d.Palette),
		Source:      ptr.To(*d.Source),
		Interval:    ptr.To(*d.Interval),
		Listen:      ptr.To(*d.Listen),
		Node:        ptr.To(*d.Node),
		Kubeconfig:  ptr.To(*d.Kubeconfig),
		Breakpoints: bps,
	}
}

// RawFileConfig is the on-disk form. Nil fields fall back to defaults.
type RawFileConfig struct {
	Segments    *int         `json:"segments,omitempty"`
	Horizontal  *bool        `json:"horizontal,omitempty"`
	Min         *float64     `json:"min,omitempty"`
	Max         *float64     `json:"max,omitempty"`
	Cells       *int         `json:"cells,omitempty"`
	Percent     *bool        `json:"percent,omitempty"`
	Palette     *string      `json:"palette,omitempty"`
	Source      *string      `json:"source,omitempty"`
	Interval    *string      `json:"interval,omitempty"`
	Listen      *string      `json:"listen,omitempty"`
	Node        *string      `json:"node,omitempty"`
	Kubeconfig  *string      `json:"kubeconfig,omitempty"`
	Breakpoints [][2]float64 `json:"breakpoints,omitempty"`
}

type File struct {
	c        *RawFileConfig
	filepath string
}

// NewFile loads and validates the config at configPath. A missing or empty
// file yields the defaults.
func NewFile(configPath string) (*File, error) {
	f := &File{filepath: configPath}
	if err := f.Load(); err != nil {
		return nil, err
	}
	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}
	return &File{c: c, filepath: configPath}
}

func (f *File) Segments() int { return ptr.Deref(f.c.Segments, *defaultFileConfig.Segments) }

func (f *File) Orientation() domain.Orientation {
	if ptr.Deref(f.c.Horizontal, *defaultFileConfig.Horizontal) {
		return domain.Horizontal
	}
	return domain.Vertical
}

func (f *File) Range() domain.Range {
	return domain.Range{
		Min: ptr.Deref(f.c.Min, *defaultFileConfig.Min),
		Max: ptr.Deref(f.c.Max, *defaultFileConfig.Max),
	}
}

func (f *File) Cells() int { return ptr.Deref(f.c.Cells, *defaultFileConfig.Cells) }

func (f *File) PercentOutput() bool { return ptr.Deref(f.c.Percent, *defaultFileConfig.Percent) }

func (f *File) Palette() bargraph.Palette {
	p, err := bargraph.ParsePalette(ptr.Deref(f.c.Palette, *defaultFileConfig.Palette))
	if err != nil {
		return bargraph.PaletteBands
	}
	return p
}

func (f *File) Source() string { return ptr.Deref(f.c.Source, *defaultFileConfig.Source) }

func (f *File) Interval() time.Duration {
	d, err := time.ParseDuration(ptr.Deref(f.c.Interval, *defaultFileConfig.Interval))
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(*defaultFileConfig.Interval)
	}
	return d
}

func (f *File) Listen() string     { return ptr.Deref(f.c.Listen, *defaultFileConfig.Listen) }
func (f *File) Node() string       { return ptr.Deref(f.c.Node, *defaultFileConfig.Node) }
func (f *File) Kubeconfig() string { return ptr.Deref(f.c.Kubeconfig, *defaultFileConfig.Kubeconfig) }

// Table returns the configured discharge curve, or the LiPo curve.
func (f *File) Table() domain.BreakpointTable {
	if len(f.c.Breakpoints) == 0 {
		return bargraph.LiPoTable
	}
	t := make(domain.BreakpointTable, 0, len(f.c.Breakpoints))
	for _, bp := range f.c.Breakpoints {
		t = append(t, domain.Breakpoint{Voltage: bp[0], Percent: bp[1]})
	}
	return t
}

// Options applies the file values to base.
func (f *File) Options(base bargraph.Options) bargraph.Options {
	base.Segments = f.Segments()
	base.Orientation = f.Orientation()
	base.Range = f.Range()
	base.Cells = f.Cells()
	base.Table = f.Table()
	base.Palette = f.Palette()
	base.PercentOutput = f.PercentOutput()
	return base
}

// Validate checks the values that cannot be clamped into shape.
func (f *File) Validate() error {
	if f.c.Palette != nil {
		if _, err := bargraph.ParsePalette(*f.c.Palette); err != nil {
			return pkgerrors.Wrap(err, "invalid palette")
		}
	}
	if f.c.Interval != nil {
		d, err := time.ParseDuration(*f.c.Interval)
		if err != nil {
			return pkgerrors.Wrap(err, "invalid interval")
		}
		if d <= 0 {
			return pkgerrors.Errorf("interval must be positive, got %s", d)
		}
	}
	if rng := f.Range(); rng.Min >= rng.Max {
		return pkgerrors.Errorf("min must be below max, got [%g, %g]", rng.Min, rng.Max)
	}
	if len(f.c.Breakpoints) > 0 {
		if err := f.Table().Validate(); err != nil {
			return pkgerrors.Wrap(err, "invalid breakpoints")
		}
	}
	return nil
}

func (f *File) Load() error {
	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}
	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if err := json.Unmarshal(b, &conf); err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return pkgerrors.Wrapf(f.Validate(), "invalid config in %s", f.filepath)
}

func (f *File) Save() error {
	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.c); err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}
	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"segments":    f.Segments(),
		"orientation": f.Orientation().String(),
		"min":         f.Range().Min,
		"max":         f.Range().Max,
		"cells":       f.Cells(),
		"percent":     f.PercentOutput(),
		"palette":     f.Palette().String(),
		"source":      f.Source(),
		"interval":    f.Interval().String(),
		"breakpoints": len(f.Table()),
	}
}
