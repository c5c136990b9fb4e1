// Package ribbon computes the layout and projection of contig-to-reference
// alignment records onto a shared one-dimensional coordinate axis, and
// assembles the resulting ribbon geometry into a drawable scene.
//
// # Pipeline
//
// The package is a strictly forward pipeline over a loaded
// [ctgmap.RecordSet]:
//
//  1. [Assign] resolves each query contig's primary target by aligned
//     coverage and partitions the records into primary and alternate sets.
//  2. [Plan] walks the target table in order, giving every target a block
//     on the global axis sized to fit the target and its assigned contigs.
//  3. [BuildScene] projects every record into scaled drawing coordinates
//     and emits overview and per-target detail groups.
//
// The scene is plain geometry data; serialization to SVG or HTML lives in
// the sink subpackage.
//
// # Determinism
//
// Identical inputs always yield identical scenes. All reductions that the
// data does not order are given an explicit order: query names are
// iterated sorted, coverage ties break on the smaller target name, lanes
// sort by (target start, query name), and colors derive from a stable
// FNV-1a hash of the query name.
package ribbon

import (
	"slices"

	"github.com/ctgplot/ctgplot/pkg/ctgmap"
	"github.com/ctgplot/ctgplot/pkg/errors"
)

// Assignment is the primary-target resolution for every query contig and
// the record partition derived from it. It is computed once per run by
// [Assign] and read-only thereafter.
//
// A record is primary when its query's primary target equals the record's
// target; otherwise it is alternate, indexed by both its query name and
// its target name so overlays can be looked up from either side.
type Assignment struct {
	// PrimaryTarget maps a query name to the target receiving the most
	// aligned query bases among its non-duplicate records.
	PrimaryTarget map[string]string

	// PrimaryQuery is the inverse map. When several queries pick the same
	// target, the lexicographically greatest query name survives: queries
	// are written in ascending name order and later writers overwrite.
	PrimaryQuery map[string]string

	// Primary indexes primary records by target name, in input order.
	Primary map[string][]ctgmap.Record

	// AltByQuery indexes alternate records by query name, in input order.
	AltByQuery map[string][]ctgmap.Record

	// AltByTarget indexes alternate records by target name, in input order.
	AltByTarget map[string][]ctgmap.Record
}

// Assign resolves primary targets from the full record set.
//
// Coverage is tallied per (query, target) over non-query-duplicate records
// as the sum of |qe-qs|. For each query the target with the maximum tally
// wins; ties break on the smaller target name. Every record is then
// partitioned as primary or alternate. A record whose query earned no
// coverage at all (every record query-duplicate) is classified alternate.
//
// Records referencing names absent from the length tables are a fatal
// input error.
func Assign(set *ctgmap.RecordSet) (*Assignment, error) {
	targetLen := set.TargetLengths()
	queryLen := set.QueryLengths()

	coverage := make(map[string]map[string]uint64)
	for _, r := range set.Records {
		if _, ok := targetLen[r.TName]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidRecord, "record references unknown target %q", r.TName)
		}
		if _, ok := queryLen[r.QName]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidRecord, "record references unknown query %q", r.QName)
		}
		if r.QDup {
			continue
		}
		tally := coverage[r.QName]
		if tally == nil {
			tally = make(map[string]uint64)
			coverage[r.QName] = tally
		}
		tally[r.TName] += uint64(r.QuerySpan())
	}

	a := &Assignment{
		PrimaryTarget: make(map[string]string, len(coverage)),
		PrimaryQuery:  make(map[string]string, len(coverage)),
		Primary:       make(map[string][]ctgmap.Record),
		AltByQuery:    make(map[string][]ctgmap.Record),
		AltByTarget:   make(map[string][]ctgmap.Record),
	}

	for _, query := range sortedKeys(coverage) {
		tally := coverage[query]
		var best string
		var bestCov uint64
		// Names ascending with a strictly-greater replacement: ties keep
		// the smaller target name.
		for _, target := range sortedKeys(tally) {
			if best == "" || tally[target] > bestCov {
				best, bestCov = target, tally[target]
			}
		}
		a.PrimaryTarget[query] = best
		a.PrimaryQuery[best] = query
	}

	for _, r := range set.Records {
		if a.PrimaryTarget[r.QName] == r.TName {
			a.Primary[r.TName] = append(a.Primary[r.TName], r)
		} else {
			a.AltByQuery[r.QName] = append(a.AltByQuery[r.QName], r)
			a.AltByTarget[r.TName] = append(a.AltByTarget[r.TName], r)
		}
	}
	return a, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
