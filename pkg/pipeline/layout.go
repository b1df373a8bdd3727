package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/padring/pkg/config"
	"github.com/matzehuels/padring/pkg/floorplan"
	"github.com/matzehuels/padring/pkg/layoutio"
)

// BuildLayout builds the floorplan described by cfg. It does no caching.
func BuildLayout(cfg *config.Config) (*floorplan.Layout, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	return floorplan.Build(cat, policy)
}

// BuildDocument builds the floorplan described by cfg and returns its
// document.
func BuildDocument(cfg *config.Config) (*layoutio.Document, error) {
	l, err := BuildLayout(cfg)
	if err != nil {
		return nil, err
	}
	return layoutio.FromLayout(l, cfg.Hash(), cfg.DBUnits), nil
}

// logSides writes the spacing summary of every side at debug level.
func logSides(logger *log.Logger, doc *layoutio.Document) {
	for _, s := range doc.Sides {
		logger.Debug("side",
			"side", s.Side,
			"pads", s.Pads,
			"spacing", s.Spacing,
			"fillers", s.Fillers,
			"depth", s.Depth)
	}
}

// stats counts the instances of doc.
func stats(doc *layoutio.Document) Stats {
	return Stats{
		Corners: doc.Count(floorplan.KindCorner),
		Pads:    doc.Count(floorplan.KindPad),
		Fillers: doc.Count(floorplan.KindFiller),
		Macros:  doc.Count(floorplan.KindMacro),
		Pins:    len(doc.Pins),
	}
}

