// Package render provides visualization rendering for alignment maps.
//
// # Overview
//
// This package groups the rendering pipeline that transforms alignment
// record sets into visual outputs:
//
//   - Ribbon plots (in [ribbon] subpackage): the two-tier overview/detail
//     drawing where alignment ribbons connect reference intervals to contig
//     intervals.
//   - Serialization (in [ribbon/sink] subpackage): standalone SVG and
//     interactive HTML with per-viewport zooming.
//
// # Ribbon Plots
//
// The [ribbon] subpackage runs four passes over a loaded record set:
//
//	asg, _ := ribbon.Assign(set)                              // coverage-based primary targets
//	scene, _ := ribbon.BuildScene(set, asg, ribbon.Options{}) // layout + projection + assembly
//	svg := sink.RenderSVG(scene)
//
// Scenes are plain geometry: horizontal segments, ribbon quadrilaterals,
// and labels grouped per target. The sink subpackage owns all markup.
package render
