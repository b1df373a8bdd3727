// Package pkg provides the libraries behind padring, an IC die floorplanner.
//
// # Overview
//
// padring places the I/O ring of a chip: corner cells, signal and supply
// pads spread evenly along each side, filler cells closing every gap and
// die-level pins on the pads. It sizes the die from the standard-cell core
// and places hard macros such as RAMs. The pkg directory is organized into:
//
//  1. [geom], [catalog], [floorplan] - Domain logic (geometry, cells, placement)
//  2. [config] - TOML floorplan descriptions
//  3. [layoutio], [render] - Serialization (JSON, DEF, SVG, DOT)
//  4. [cache], [store], [observability] - Infrastructure (caching, layout archive, hooks)
//  5. [pipeline], [server] - Orchestration (config → layout → render) and HTTP API
//
// # Architecture
//
// The typical data flow through padring:
//
//	floorplan.toml
//	         ↓
//	    [config] package (parse, defaults, validation)
//	         ↓
//	    [floorplan] package (die, corners, sides, fill, macros, overlap check)
//	         ↓
//	    [layoutio] package (layout document)
//	         ↓
//	    [render] package (DEF, SVG, hierarchy diagrams)
//
// # Quick Start
//
//	cfg, _ := config.Load("floorplan.toml")
//	cat, _ := cfg.Catalog()
//	policy, _ := cfg.Policy()
//	layout, err := floorplan.Build(cat, policy)
//	if err != nil {
//	    // a typed error names the side and the quantities involved
//	}
//	def.Write(os.Stdout, layout, def.Options{DBUnits: cfg.DBUnits})
//
// [geom]: github.com/matzehuels/padring/pkg/geom
// [catalog]: github.com/matzehuels/padring/pkg/catalog
// [floorplan]: github.com/matzehuels/padring/pkg/floorplan
// [config]: github.com/matzehuels/padring/pkg/config
// [layoutio]: github.com/matzehuels/padring/pkg/layoutio
// [render]: github.com/matzehuels/padring/pkg/render
// [cache]: github.com/matzehuels/padring/pkg/cache
// [store]: github.com/matzehuels/padring/pkg/store
// [observability]: github.com/matzehuels/padring/pkg/observability
// [pipeline]: github.com/matzehuels/padring/pkg/pipeline
// [server]: github.com/matzehuels/padring/pkg/server
package pkg
