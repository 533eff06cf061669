// Package mesh defines shared constants used by the generators.
package mesh

//-----------------------------------------------------------------------------
// Method names, used to prefix errors and log lines.
//-----------------------------------------------------------------------------

const (
	// MethodStructured is the canonical name of the Structured generator.
	MethodStructured = "Structured"
	// MethodRandomized is the canonical name of the Randomized generator.
	MethodRandomized = "Randomized"
	// MethodClustered is the canonical name of the Clustered generator.
	MethodClustered = "Clustered"
	// MethodRedistribute is the canonical name of Mesh.Redistribute.
	MethodRedistribute = "Redistribute"
)

//-----------------------------------------------------------------------------
// Dimension bounds
//-----------------------------------------------------------------------------

// MinDims and MaxDims bound the spatial dimension of every mesh.
const (
	MinDims = 2
	MaxDims = 3
)

//-----------------------------------------------------------------------------
// Defaults
//-----------------------------------------------------------------------------

// DefaultEdgeWeight is the weight of every edge unless WithWeight or
// WithWeightFn says otherwise.
const DefaultEdgeWeight = 1.0

// DefaultJitter is the default perturbation bound of Randomized, as a
// fraction of the lattice spacing per axis.
const DefaultJitter = 0.45

// DefaultLeafSize is the maximum number of points in a spatial-tree leaf.
const DefaultLeafSize = 16

// maxTreeDepth stops subdivision of coincident point clusters.
const maxTreeDepth = 48
