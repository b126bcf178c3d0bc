// Package dagre is a native Go port of the dagre hierarchical graph layout
// engine. It computes positions for the nodes and routing points for the
// edges of a directed, optionally compound graph using the Sugiyama method:
// cycle breaking, rank assignment, crossing minimization, and coordinate
// assignment.
//
// The port is faithful to dagre.js down to iteration order, tie-breaks, and
// floating point arithmetic so that output can be compared byte-for-byte
// against diagrams laid out by the JS engine.
//
// See graphlib for the graph container and dagrelayout for the engine.
package dagre

var Version = "v0.1.0-HEAD"
