// Package config reads floorplan descriptions from TOML.
//
// A config file names the cell catalog (the built-in sky130 library, an
// optional LEF file and per-role overrides) and the floorplan policy. All
// lengths are written in microns and converted to database units at
// db_units per micron. Every section is optional; anything left out takes
// the sky130 zerosoc value returned by [Default].
//
//	db_units = 1000
//
//	[sizing]
//	std_cell_width = 0.46
//	std_cell_height = 2.72
//	cols = 6800
//	rows = 900
//
//	[pads]
//	signals = 9
//	split = 5
//	power = ["vdd", "vss", "vddio", "vssio"]
//
//	[[macro]]
//	name = "soc.ram.u_mem.gen_sky130.u_impl_sky130.mem"
//	role = "ram"
//	anchor = "ne"
//	keepout_cols = 250
//	keepout_rows = 50
//	outside_core = true
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config
