// Package layoutio provides JSON import and export for floorplan layouts.
//
// # Overview
//
// A [floorplan.Layout] is converted to a [Document], a flat, serializable
// view of the layout in database units. Documents are what the pipeline
// caches, what the server stores and what every renderer reads, so a layout
// computed once can be rendered to DEF, SVG or a hierarchy diagram later
// without rerunning the floorplanner.
//
// # JSON Format
//
//	{
//	  "id": "6f1c…",
//	  "config_hash": "…",
//	  "version": 1,
//	  "db_units": 1000,
//	  "die": {"width": 4760000, "height": 4080000, "core": {...}, ...},
//	  "instances": [
//	    {"name": "corner_sw", "role": "corner", "cell": "…", "kind": "corner",
//	     "x": 0, "y": 0, "width": 200000, "height": 204000, "orient": "S"},
//	    ...
//	  ],
//	  "pins": [...],
//	  "fill_counts": {"fill20": 562, ...},
//	  "sides": [...]
//	}
//
// Instance names use the dotted form of [floorplan.Ident]; escaping for DEF
// happens only in the DEF writer.
//
// # Identity
//
// The document ID is a name-based (version 5) UUID of the config hash, so
// the same config always yields the same ID and a stored layout can be
// found again from its config.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate the document version, instance
// names and geometry. [Document.Layout] turns a document back into a
// [floorplan.Layout].
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write to
// any io.Writer. Output is indented and deterministic: the same layout
// always produces the same bytes.
package layoutio
