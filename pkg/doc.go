// Package pkg provides the core libraries for ctgplot alignment plotting.
//
// # Overview
//
// ctgplot turns contig-to-reference alignment records into deterministic
// two-tier vector drawings: a genome-wide overview and zoomable per-target
// detail scenes. The pkg directory is organized into four main areas:
//
//  1. [ctgmap] - Input model (alignment records, sequence tables, cytobands)
//  2. [render/ribbon] - Domain logic (assignment, layout, projection, scene)
//  3. [render/ribbon/sink] - Serialization (SVG and interactive HTML)
//  4. [bedmerge] - BED interval merging across labeled input sets
//
// # Architecture
//
// The typical data flow through ctgplot:
//
//	ctgmap JSON document
//	         ↓
//	    [ctgmap] package (load + validate records)
//	         ↓
//	    [render/ribbon] package (assign → layout → project → scene)
//	         ↓
//	    [render/ribbon/sink] package (serialize)
//	         ↓
//	    SVG/HTML output
//
// # Quick Start
//
// Load an alignment document and render a plot:
//
//	import (
//	    "github.com/ctgplot/ctgplot/pkg/ctgmap"
//	    "github.com/ctgplot/ctgplot/pkg/render/ribbon"
//	    "github.com/ctgplot/ctgplot/pkg/render/ribbon/sink"
//	)
//
//	// 1. Load the record set
//	set, _ := ctgmap.LoadRecordSet("asm.ctgmap.json")
//
//	// 2. Assign every contig a primary target by aligned coverage
//	asg, _ := ribbon.Assign(set)
//
//	// 3. Assemble the two-tier scene
//	scene, _ := ribbon.BuildScene(set, asg, ribbon.Options{PanelWidth: 1400})
//
//	// 4. Serialize
//	html := sink.RenderHTML(scene)
//
// # Main Packages
//
// [ctgmap] - The input model: alignment records with duplication and
// orientation flags, target/query sequence tables, cytoband definitions,
// and highlight BED loading.
//
// [render/ribbon] - Primary-target assignment, the 1-D linear layout of
// target blocks on a shared axis, orientation-aware projection of query
// intervals, and scene assembly. Every pass is deterministic: identical
// inputs produce identical scenes.
//
// [render/ribbon/sink] - Scene serialization. RenderSVG emits a standalone
// document; RenderHTML wraps it with a zoom script bound to every detail
// viewport.
//
// [bedmerge] - Sweep-line merging of BED intervals from multiple labeled
// sets, used to find regions unique to one set.
//
// [errors] - Structured errors with machine-readable codes.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/render/ribbon/...    # Specific package
package pkg
