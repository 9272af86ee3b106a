package classify

// Built-in threshold tables used when no palette file is configured
var (
	// DiscreteEdges are the per-record speed classes of the polyline map,
	// followed by an overflow class above 131 km/h
	DiscreteEdges  = []float64{0, 11.52, 26.73, 42.64, 64.85, 131}
	DiscreteColors = []string{"#fff5f0", "#fcbea5", "#fb7050", "#d32020", "#67000d", "#3b0008"}

	// RampEdges drive the stepped legend; the last color is clamped
	RampEdges  = []float64{0, 12, 27, 43, 65, 131}
	RampColors = []string{"#fff5f0", "#fcbea5", "#fb7050", "#d32020", "#67000d"}

	// Plasma is an 11-step sample of the Plasma colormap
	Plasma = []string{
		"#0c0786", "#40039c", "#6a00a7", "#8f0da3", "#b02a8f", "#ca4678",
		"#e06461", "#f1824c", "#fca635", "#fccc25", "#eff821",
	}

	// HierarchyColors maps road hierarchy classes to line colors
	HierarchyColors = map[string]string{
		"Rodovia":      "#d7191c",
		"Via Expressa": "#7b3294",
		"Via Arterial": "#fdae61",
		"Via Coletora": "#abd9e9",
		"Via Local":    "#2c7bb6",
	}
)

// Unclassified is the reserved color for negative or missing speeds
const Unclassified = "gray"
