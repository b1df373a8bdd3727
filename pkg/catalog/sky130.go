package catalog

import "github.com/matzehuels/padring/pkg/geom"

// DefaultDBU is the number of database units per micron used by the
// built-in catalog.
const DefaultDBU = 1000

// Microns converts a length in microns to database units at dbu units per
// micron, rounding half away from zero.
func Microns(um float64, dbu int) geom.Unit {
	v := um * float64(dbu)
	if v < 0 {
		return geom.Unit(v - 0.5)
	}
	return geom.Unit(v + 0.5)
}

// Sky130 returns the sky130 I/O library cells together with the sram macro
// and the core block of the zerosoc example, at [DefaultDBU].
func Sky130() *Catalog { return Sky130At(DefaultDBU) }

// Sky130At is like [Sky130] with lengths in dbu units per micron.
func Sky130At(dbu int) *Catalog {
	um := func(v float64) geom.Unit { return Microns(v, dbu) }
	return MustNew(
		Cell{Role: "gpio", Width: um(80), Height: um(200), TechName: "sky130_ef_io__gpiov2_pad_wrapped", Class: ClassSignal},
		Cell{Role: "vdd", Width: um(75), Height: um(200), TechName: "sky130_ef_io__vccd_hvc_pad", Class: ClassPower},
		Cell{Role: "vss", Width: um(75), Height: um(200), TechName: "sky130_ef_io__vssd_hvc_pad", Class: ClassGround},
		Cell{Role: "vddio", Width: um(75), Height: um(200), TechName: "sky130_ef_io__vddio_hvc_pad", Class: ClassPower},
		Cell{Role: "vssio", Width: um(75), Height: um(200), TechName: "sky130_ef_io__vssio_hvc_pad", Class: ClassGround},
		Cell{Role: "corner", Width: um(200), Height: um(204), TechName: "sky130_ef_io__corner_pad", Class: ClassCorner},
		Cell{Role: "fill1", Width: um(1), Height: um(197.965), TechName: "sky130_ef_io__com_bus_slice_1um", Class: ClassFiller},
		Cell{Role: "fill5", Width: um(5), Height: um(197.965), TechName: "sky130_ef_io__com_bus_slice_5um", Class: ClassFiller},
		Cell{Role: "fill10", Width: um(10), Height: um(197.965), TechName: "sky130_ef_io__com_bus_slice_10um", Class: ClassFiller},
		Cell{Role: "fill20", Width: um(20), Height: um(197.965), TechName: "sky130_ef_io__com_bus_slice_20um", Class: ClassFiller},
		Cell{Role: "ram", Width: um(683.1), Height: um(416.54), TechName: "sky130_sram_2kbyte_1rw1r_32x512_8", Class: ClassMacro},
		Cell{Role: "asic_core", Width: um(3000), Height: um(2400), TechName: "asic_core", Class: ClassBlock},
	)
}
