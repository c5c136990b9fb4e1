package ribbon

import (
	"math"

	"github.com/ctgplot/ctgplot/pkg/ctgmap"
	"github.com/ctgplot/ctgplot/pkg/errors"
)

// TargetPadding is the fixed number of bases inserted after every target
// block to visually separate adjacent blocks on the shared axis.
const TargetPadding = 1.5e6

// FilterSummary is the sentinel target filter selecting the genome-wide
// overview only: all targets are laid out, no detail scenes are built.
const FilterSummary = "summary"

// Block is one target's slot on the shared coordinate axis: the target
// itself plus the primary records of the query contigs assigned to it.
// Blocks are created by [Plan] and never mutated afterwards.
type Block struct {
	ID      uint32
	Name    string
	Length  uint32
	Offset  float64
	Records []ctgmap.Record
}

// Width returns the base-coordinate width of the block excluding padding:
// the larger of the target length and the summed lengths of its distinct
// assigned query contigs.
func (b Block) Width(queryLen map[string]uint32) float64 {
	return math.Max(float64(b.Length), b.queryExtent(queryLen))
}

func (b Block) queryExtent(queryLen map[string]uint32) float64 {
	seen := make(map[string]bool)
	var extent float64
	for _, r := range b.Records {
		if seen[r.QName] {
			continue
		}
		seen[r.QName] = true
		extent += float64(queryLen[r.QName])
	}
	return extent
}

// Layout is the result of the linear layout pass: one block per included
// target, offsets accumulating left to right in target-table order, and
// the total extent of the axis including padding.
type Layout struct {
	Blocks []Block
	Extent float64
}

// Plan walks the sorted target table and assigns each target a cumulative
// offset on the global axis. Each block is sized max(target length, summed
// distinct query lengths) plus [TargetPadding].
//
// A non-empty filter that is not [FilterSummary] keeps only the named
// target; [FilterSummary] keeps all targets. Targets with no primary
// records still get a block so they appear in the overview backbone.
func Plan(set *ctgmap.RecordSet, asg *Assignment, filter string) (Layout, error) {
	queryLen := set.QueryLengths()

	var l Layout
	for _, t := range set.TargetLength {
		if filter != "" && filter != FilterSummary && filter != t.Name {
			continue
		}
		b := Block{
			ID:      t.ID,
			Name:    t.Name,
			Length:  t.Length,
			Offset:  l.Extent,
			Records: asg.Primary[t.Name],
		}
		for _, r := range b.Records {
			if _, ok := queryLen[r.QName]; !ok {
				return Layout{}, errors.New(errors.ErrCodeInvalidRecord, "record references unknown query %q", r.QName)
			}
		}
		l.Blocks = append(l.Blocks, b)
		l.Extent += b.Width(queryLen) + TargetPadding
	}
	return l, nil
}

// ScalingFactor converts base coordinates to drawing units so the laid-out
// axis spans 80% of the panel width. A caller-supplied totalBases overrides
// the layout's own extent, keeping plots from independent runs on a shared
// scale.
func (l Layout) ScalingFactor(panelWidth, totalBases float64) float64 {
	total := l.Extent
	if totalBases > 0 {
		total = totalBases
	}
	return panelWidth * 0.8 / total
}
