package ribbon

import (
	"fmt"
	"strings"

	"github.com/ctgplot/ctgplot/pkg/ctgmap"
)

// Vertical positions of the drawing tracks, in sub-scene units.
const (
	overviewBackboneY  = 6
	overviewHighlightY = 3
	overviewRibbonTop  = 10
	overviewRibbonBot  = 90
	overviewLaneY      = 95

	detailBackboneY  = 6
	detailHighlightY = detailBackboneY - 8
	detailAltLaneY   = 14
	detailRibbonTop  = 14
	detailRibbonBot  = 88
	detailLaneY      = 95
	detailAltQueryY  = 105
)

// detailMagnification rescales the per-target detail pass: a single target
// is rendered across the full panel width instead of its share of the
// genome-wide axis.
const detailMagnification = 12

// Heights of the outer document viewport, full two-tier vs. filtered.
const (
	fullBoxHeight     = 3500
	filteredBoxHeight = 180
)

// detailStart is the vertical position of the first stacked detail
// sub-scene, leaving room for the overview above it.
const detailStart = 200

// Segment is a horizontal stroke: a backbone, lane, overlay, or highlight.
type Segment struct {
	X1, X2, Y float64
	Color     string
	Width     float64
	Title     string
}

// Quad is one alignment ribbon: a quadrilateral connecting the scaled
// target interval on the top edge to the scaled query interval on the
// bottom edge. Vertex order is (TS,top) (TE,top) (QE,bottom) (QS,bottom).
type Quad struct {
	TS, TE, QS, QE float64
	Top, Bottom    float64
	Fill           string
	Title          string
}

// Label is a small text annotation inside a group.
type Label struct {
	X, Y float64
	Text string
}

// Group is one target's worth of drawable geometry.
type Group struct {
	ID       string
	Segments []Segment
	Quads    []Quad
	Labels   []Label
}

// Detail is a per-target sub-scene with its own local viewport.
type Detail struct {
	Name  string
	Group Group
}

// Scene is the assembled two-tier drawing: a genome-wide overview followed
// by stacked per-target detail sub-scenes. It is plain geometry; the sink
// subpackage serializes it.
type Scene struct {
	PanelWidth float64
	BoxHeight  float64
	DetailY    float64
	Overview   []Group
	Details    []Detail
}

// Options configures scene assembly.
type Options struct {
	// PanelWidth is the target panel width in pixels.
	PanelWidth float64

	// TotalTargetBases, when positive, fixes the scale denominator so
	// plots from independent runs share one scale.
	TotalTargetBases float64

	// Target restricts the plot: empty renders overview plus all details,
	// FilterSummary renders the overview only, any other value renders
	// that target's detail scene only.
	Target string

	// Cytobands, when present for a target, replaces its plain detail
	// backbone with a banded one.
	Cytobands map[string][]ctgmap.Band

	// Highlights are per-target regions overlaid on both tiers.
	Highlights map[string][][2]uint32
}

// BuildScene runs the layout and projection passes and assembles the
// two-tier scene.
func BuildScene(set *ctgmap.RecordSet, asg *Assignment, opts Options) (Scene, error) {
	lay, err := Plan(set, asg, opts.Target)
	if err != nil {
		return Scene{}, err
	}
	queryLen := set.QueryLengths()
	scale := lay.ScalingFactor(opts.PanelWidth, opts.TotalTargetBases)

	sc := Scene{PanelWidth: opts.PanelWidth, BoxHeight: filteredBoxHeight}
	if opts.Target == "" {
		sc.BoxHeight = fullBoxHeight
	}

	if opts.Target == "" || opts.Target == FilterSummary {
		for _, b := range lay.Blocks {
			sc.Overview = append(sc.Overview, overviewGroup(b, queryLen, scale, opts.Highlights))
		}
	}

	if opts.Target == FilterSummary {
		return sc, nil
	}

	detailScale := scale
	if opts.Target == "" {
		detailScale = scale * detailMagnification
		sc.DetailY = detailStart
	}
	for _, b := range lay.Blocks {
		if opts.Target != "" && b.Name != opts.Target {
			continue
		}
		sc.Details = append(sc.Details, Detail{
			Name:  b.Name,
			Group: detailGroup(b, asg, queryLen, detailScale, opts),
		})
	}
	return sc, nil
}

// overviewGroup projects one target block into the genome-wide tier. The
// block's global offset shifts both target- and query-side coordinates.
func overviewGroup(b Block, queryLen map[string]uint32, scale float64, highlights map[string][][2]uint32) Group {
	g := Group{ID: "overview_" + b.Name}

	begin := b.Offset * scale
	end := (b.Offset + float64(b.Length)) * scale
	// Alternate stroke widths so adjacent backbones stay distinguishable.
	width := 4.0 + float64((b.ID+1)%2)*1.5
	g.Segments = append(g.Segments, Segment{X1: begin, X2: end, Y: overviewBackboneY, Color: "#000", Width: width})
	g.Labels = append(g.Labels, Label{X: begin, Y: 0, Text: b.Name})

	for _, region := range highlights[b.Name] {
		g.Segments = append(g.Segments, Segment{
			X1:    (b.Offset + float64(region[0])) * scale,
			X2:    (b.Offset + float64(region[1])) * scale,
			Y:     overviewHighlightY,
			Color: "#F00",
			Width: 6,
		})
	}

	lanes := queryLanes(b.Records, queryLen)
	for _, ln := range lanes {
		g.Segments = append(g.Segments, Segment{
			X1:    (b.Offset + ln.offset) * scale,
			X2:    (b.Offset + ln.offset + float64(ln.length)) * scale,
			Y:     overviewLaneY,
			Color: Color(ln.name),
			Width: 5,
		})
	}

	offsets := laneOffsets(lanes)
	for _, r := range b.Records {
		if r.TDup && r.QDup {
			continue
		}
		qs, qe := projectQuery(r, queryLen[r.QName])
		offset := offsets[r.QName]
		g.Quads = append(g.Quads, Quad{
			TS:     (float64(r.TS) + b.Offset) * scale,
			TE:     (float64(r.TE) + b.Offset) * scale,
			QS:     (qs + b.Offset + offset) * scale,
			QE:     (qe + b.Offset + offset) * scale,
			Top:    overviewRibbonTop,
			Bottom: overviewRibbonBot,
			Fill:   Color(r.QName),
		})
	}
	return g
}

// detailGroup projects one target block into its own local viewport
// (block offset zero) at detail scale, adding the alternate-mapping
// overlays and hover titles the overview omits.
func detailGroup(b Block, asg *Assignment, queryLen map[string]uint32, scale float64, opts Options) Group {
	var g Group

	if bands, ok := opts.Cytobands[b.Name]; ok {
		for _, band := range bands {
			color := "#AAA"
			if strings.HasPrefix(band.Stain, "gpos") {
				color = "#000"
			}
			if band.Stain == "acen" {
				color = "#FF0"
			}
			g.Segments = append(g.Segments, Segment{
				X1:    float64(band.Start) * scale,
				X2:    float64(band.End) * scale,
				Y:     detailBackboneY,
				Color: color,
				Width: 8,
				Title: band.Name,
			})
		}
	} else {
		g.Segments = append(g.Segments, Segment{
			X1:    0,
			X2:    float64(b.Length) * scale,
			Y:     detailBackboneY,
			Color: "#000",
			Width: 8,
		})
	}

	for _, region := range opts.Highlights[b.Name] {
		g.Segments = append(g.Segments, Segment{
			X1:    float64(region[0]) * scale,
			X2:    float64(region[1]) * scale,
			Y:     detailHighlightY,
			Color: "#F00",
			Width: 6,
			Title: fmt.Sprintf("%d-%d", region[0], region[1]),
		})
	}

	// Alternate lane: alignments landing on this target from contigs whose
	// primary placement is elsewhere.
	for _, r := range asg.AltByTarget[b.Name] {
		primary := asg.PrimaryTarget[r.QName]
		if primary == "" {
			primary = "N/A"
		}
		g.Segments = append(g.Segments, Segment{
			X1:    float64(r.TS) * scale,
			X2:    float64(r.TE) * scale,
			Y:     detailAltLaneY,
			Color: "#000",
			Width: 8,
			Title: fmt.Sprintf("%s to %s with %s:%d-%d", r.TName, primary, r.QName, r.QS, r.QE),
		})
	}

	lanes := queryLanes(b.Records, queryLen)
	for _, ln := range lanes {
		g.Segments = append(g.Segments, Segment{
			X1:    ln.offset * scale,
			X2:    (ln.offset + float64(ln.length)) * scale,
			Y:     detailLaneY,
			Color: Color(ln.name),
			Width: 8,
			Title: ln.name,
		})

		// This contig's own alignments to other targets, anchored against
		// the contig's orientation rather than the target's.
		for _, r := range asg.AltByQuery[ln.name] {
			var qs, qe float64
			if ln.orientation == 0 {
				qs, qe = float64(r.QE), float64(r.QS)
			} else {
				qs = float64(ln.length) - float64(r.QE)
				qe = float64(ln.length) - float64(r.QS)
			}
			g.Segments = append(g.Segments, Segment{
				X1:    (ln.offset + qs) * scale,
				X2:    (ln.offset + qe) * scale,
				Y:     detailAltQueryY,
				Color: Color(ln.name),
				Width: 8,
				Title: fmt.Sprintf("%s@%s:%d-%d", r.QName, r.TName, r.TS, r.TE),
			})
		}
	}

	offsets := laneOffsets(lanes)
	for _, r := range b.Records {
		if r.TDup && r.QDup {
			continue
		}
		qs, qe := projectQuery(r, queryLen[r.QName])
		offset := offsets[r.QName]

		strand := '+'
		if r.Orientation == 1 {
			strand = '-'
		}
		g.Quads = append(g.Quads, Quad{
			TS:     float64(r.TS) * scale,
			TE:     float64(r.TE) * scale,
			QS:     (qs + offset) * scale,
			QE:     (qe + offset) * scale,
			Top:    detailRibbonTop,
			Bottom: detailRibbonBot,
			Fill:   Color(r.QName),
			Title: fmt.Sprintf("%s:%d-%d @ %s:%d-%d %c:%d:%d",
				r.TName, r.TS, r.TE, r.QName, r.QS, r.QE, strand, boolMark(r.TDup), boolMark(r.QDup)),
		})
	}
	return g
}

func boolMark(b bool) int {
	if b {
		return 1
	}
	return 0
}
