package bargraph

import "github.com/HaPhanBaoMinh/segbar/internal/domain"

// LiPoTable is the single-cell lithium polymer discharge curve.
var LiPoTable = domain.BreakpointTable{
	{Voltage: 4.20, Percent: 100}, {Voltage: 4.15, Percent: 95}, {Voltage: 4.10, Percent: 90}, {Voltage: 4.00, Percent: 85},
	{Voltage: 3.90, Percent: 80}, {Voltage: 3.85, Percent: 70}, {Voltage: 3.80, Percent: 60}, {Voltage: 3.75, Percent: 50},
	{Voltage: 3.70, Percent: 40}, {Voltage: 3.65, Percent: 30}, {Voltage: 3.60, Percent: 20}, {Voltage: 3.55, Percent: 10},
	{Voltage: 3.50, Percent: 5}, {Voltage: 3.45, Percent: 2}, {Voltage: 3.40, Percent: 0},
}

// EstimateSoC maps a pack voltage to a state of charge in [0,1] by linear
// interpolation between the breakpoints of table. Voltages outside the table
// clamp to 0 or 1. The table must be sorted by decreasing voltage.
func EstimateSoC(voltage float64, cells int, table domain.BreakpointTable) float64 {
	if len(table) == 0 {
		return 0
	}
	if cells < 1 {
		cells = 1
	}
	v := voltage / float64(cells)

	if v >= table[0].Voltage {
		return 1
	}
	if v <= table[len(table)-1].Voltage {
		return 0
	}

	for i := 0; i < len(table)-1; i++ {
		hi, lo := table[i], table[i+1]
		if v <= hi.Voltage && v > lo.Voltage {
			t := (v - lo.Voltage) / (hi.Voltage - lo.Voltage)
			return (lo.Percent + t*(hi.Percent-lo.Percent)) / 100
		}
	}
	// unsorted table
	return 0
}

// Percent converts a fraction to the 0..100 scale used on percent outlets.
func Percent(fraction float64) float64 { return fraction * 100 }
