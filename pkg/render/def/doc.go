// Package def writes floorplans as DEF 5.8 placement files.
//
// # Overview
//
// The output carries the die area, every placed cell as a FIXED component
// and the die-level pins. It is meant to be read by a place-and-route tool
// before standard-cell placement.
//
//	var buf bytes.Buffer
//	err := def.Write(&buf, layout, def.Options{Design: "zerosoc", DBUnits: 1000})
//
// # Names
//
// Instance names are written in dotted hierarchical form with bus brackets
// escaped, so padring.we_pads[0].i0 becomes padring.we_pads\[0\].i0. Pin
// names are written as is; a bracketed pin name is a bus bit.
//
// # Pins
//
// Pins that share a name (the shared supply nets) are merged into one PINS
// entry with a + PORT group per pad. Pin shapes are written relative to the
// pin location, which is the lower-left corner of the pin box.
package def
