package ribbon

import (
	"cmp"
	"slices"

	"github.com/ctgplot/ctgplot/pkg/ctgmap"
)

// lane is one query contig's backbone placement inside a target block: its
// within-block offset and the contig orientation of the representative
// record, which anchors the contig's alternate-target overlays.
type lane struct {
	name        string
	offset      float64
	length      uint32
	orientation uint32
}

// representatives picks, per query contig, the single record with the
// longest query span (first seen wins exact ties) and returns them sorted
// by target start, then query name.
func representatives(records []ctgmap.Record) []ctgmap.Record {
	best := make(map[string]ctgmap.Record)
	for _, r := range records {
		e, ok := best[r.QName]
		if !ok {
			best[r.QName] = r
			continue
		}
		if e.QuerySpan() < r.QuerySpan() {
			best[r.QName] = r
		}
	}

	reps := make([]ctgmap.Record, 0, len(best))
	for _, name := range sortedKeys(best) {
		reps = append(reps, best[name])
	}
	slices.SortFunc(reps, func(a, b ctgmap.Record) int {
		if c := cmp.Compare(a.TS, b.TS); c != 0 {
			return c
		}
		return cmp.Compare(a.QName, b.QName)
	})
	return reps
}

// queryLanes assigns every query contig of a block a non-overlapping
// within-block offset by accumulating query lengths in representative
// order. The first lane starts at offset 0.
func queryLanes(records []ctgmap.Record, queryLen map[string]uint32) []lane {
	var lanes []lane
	var offset float64
	for _, r := range representatives(records) {
		length := queryLen[r.QName]
		lanes = append(lanes, lane{
			name:        r.QName,
			offset:      offset,
			length:      length,
			orientation: r.CtgOrientation,
		})
		offset += float64(length)
	}
	return lanes
}

func laneOffsets(lanes []lane) map[string]float64 {
	offsets := make(map[string]float64, len(lanes))
	for _, ln := range lanes {
		offsets[ln.name] = ln.offset
	}
	return offsets
}

// projectQuery applies the orientation-aware transform to the query
// interval of r, before offsets and scaling. A reverse contig orientation
// reflects the interval across the contig length; the endpoints then swap
// exactly when the alignment strand disagrees with the contig strand.
func projectQuery(r ctgmap.Record, queryLen uint32) (float64, float64) {
	qs, qe := float64(r.QS), float64(r.QE)
	if r.CtgOrientation == 1 {
		qs, qe = float64(queryLen)-float64(r.QE), float64(queryLen)-float64(r.QS)
	}
	if r.Orientation != r.CtgOrientation {
		qs, qe = qe, qs
	}
	return qs, qe
}
