package layout

import "github.com/matzehuels/familytower/pkg/dag/ordering"

// Default geometry in pixels.
const (
	DefaultNodeWidth  = 200
	DefaultNodeHeight = 100
	DefaultRankSep    = 120
	DefaultNodeSep    = 100
	DefaultMargin     = 50
	DefaultSpouseLift = 30
)

// Options configures the engine. Zero fields take the defaults.
type Options struct {
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	RankSep    float64 `toml:"rank_sep"`
	NodeSep    float64 `toml:"node_sep"`
	MarginX    float64 `toml:"margin_x"`
	MarginY    float64 `toml:"margin_y"`
	// SpouseLift is how far a newly placed spouse is raised above its partner.
	SpouseLift float64 `toml:"spouse_lift"`
	// Passes bounds the barycentric sweeps; 0 uses ordering.DefaultPasses.
	Passes int `toml:"passes"`

	// Orderer overrides the row ordering algorithm.
	Orderer ordering.Orderer `toml:"-"`
}

// DefaultOptions returns the standard geometry.
func DefaultOptions() Options {
	return Options{
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		RankSep:    DefaultRankSep,
		NodeSep:    DefaultNodeSep,
		MarginX:    DefaultMargin,
		MarginY:    DefaultMargin,
		SpouseLift: DefaultSpouseLift,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.NodeWidth <= 0 {
		o.NodeWidth = d.NodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = d.NodeHeight
	}
	if o.RankSep <= 0 {
		o.RankSep = d.RankSep
	}
	if o.NodeSep <= 0 {
		o.NodeSep = d.NodeSep
	}
	if o.MarginX <= 0 {
		o.MarginX = d.MarginX
	}
	if o.MarginY <= 0 {
		o.MarginY = d.MarginY
	}
	if o.SpouseLift <= 0 {
		o.SpouseLift = d.SpouseLift
	}
	if o.Orderer == nil {
		o.Orderer = ordering.Barycentric{Passes: o.Passes}
	}
	return o
}

// colStep is the horizontal distance between neighbouring columns.
func (o Options) colStep() float64 { return o.NodeWidth + o.NodeSep }

// rankStep is the vertical distance between neighbouring ranks.
func (o Options) rankStep() float64 { return o.NodeHeight + o.RankSep }
