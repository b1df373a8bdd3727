// Package catalog describes the technology cells a floorplan is built from.
//
// A [Catalog] maps logical roles ("gpio", "vdd", "corner", "fill20", "ram")
// to concrete [Cell] definitions: size in database units and the
// technology-specific cell name written to exchange formats. The floorplanner
// never decides which cells exist; it only reads the catalog.
//
// Catalogs come from three places:
//   - [Sky130]: the built-in sky130 I/O library used by the zerosoc example
//   - [LoadLEF]: MACRO SIZE statements of a LEF library
//   - the [cells] tables of a floorplan config file (see package config)
package catalog
