package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for the layout of the canvas whose content
	// hash is canvasHash, computed with opts.
	LayoutKey(canvasHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts are the layout inputs that change the result besides the
// canvas itself.
type LayoutKeyOpts struct {
	Engine    string  `json:"engine"`
	Direction string  `json:"direction"`
	NodeSep   float64 `json:"node_sep"`
	RankSep   float64 `json:"rank_sep"`
	EdgeSep   float64 `json:"edge_sep"`
	Margin    float64 `json:"margin"`
	Ranker    string  `json:"ranker"`
	Align     string  `json:"align"`
}

// DefaultKeyer produces keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(canvasHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", canvasHash, opts)
}
