package ribbon

import (
	"testing"

	"github.com/ctgplot/ctgplot/pkg/ctgmap"
	"github.com/ctgplot/ctgplot/pkg/errors"
)

// twoTargetSet is the canonical fixture: one contig with majority coverage
// against chr1 and a shorter alignment against chr2.
func twoTargetSet() *ctgmap.RecordSet {
	return &ctgmap.RecordSet{
		Records: []ctgmap.Record{
			{TName: "chr1", TS: 0, TE: 900, QName: "ctgA", QS: 100, QE: 1000, CtgLen: 1500},
			{TName: "chr2", TS: 500, TE: 800, QName: "ctgA", QS: 1000, QE: 1300, CtgLen: 1500},
		},
		TargetLength: []ctgmap.SeqLength{{ID: 0, Name: "chr1", Length: 1000}, {ID: 1, Name: "chr2", Length: 2000}},
		QueryLength:  []ctgmap.SeqLength{{ID: 0, Name: "ctgA", Length: 1500}},
	}
}

func TestAssignPrimaryByCoverage(t *testing.T) {
	asg, err := Assign(twoTargetSet())
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}

	if got := asg.PrimaryTarget["ctgA"]; got != "chr1" {
		t.Errorf("PrimaryTarget[ctgA] = %q, want chr1", got)
	}
	if got := asg.PrimaryQuery["chr1"]; got != "ctgA" {
		t.Errorf("PrimaryQuery[chr1] = %q, want ctgA", got)
	}
	if len(asg.Primary["chr1"]) != 1 {
		t.Errorf("Primary[chr1] count = %d, want 1", len(asg.Primary["chr1"]))
	}
	if len(asg.AltByQuery["ctgA"]) != 1 {
		t.Errorf("AltByQuery[ctgA] count = %d, want 1", len(asg.AltByQuery["ctgA"]))
	}
	if len(asg.AltByTarget["chr2"]) != 1 {
		t.Errorf("AltByTarget[chr2] count = %d, want 1", len(asg.AltByTarget["chr2"]))
	}
	if alt := asg.AltByTarget["chr2"]; len(alt) == 1 && alt[0].TName != "chr2" {
		t.Errorf("AltByTarget[chr2][0].TName = %q, want chr2", alt[0].TName)
	}
}

func TestAssignCoverageTieBreak(t *testing.T) {
	// Equal coverage on two targets: the smaller target name wins.
	set := &ctgmap.RecordSet{
		Records: []ctgmap.Record{
			{TName: "chr2", QName: "ctgA", QS: 0, QE: 500},
			{TName: "chr1", QName: "ctgA", QS: 500, QE: 1000},
		},
		TargetLength: []ctgmap.SeqLength{{ID: 0, Name: "chr1", Length: 1000}, {ID: 1, Name: "chr2", Length: 1000}},
		QueryLength:  []ctgmap.SeqLength{{ID: 0, Name: "ctgA", Length: 1000}},
	}

	asg, err := Assign(set)
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}
	if got := asg.PrimaryTarget["ctgA"]; got != "chr1" {
		t.Errorf("PrimaryTarget[ctgA] = %q, want chr1 (tie broken by name)", got)
	}
}

func TestAssignInverseLastWriterWins(t *testing.T) {
	// Two queries both choose chr1; queries are written in ascending name
	// order, so the greater name survives in the inverse map.
	set := &ctgmap.RecordSet{
		Records: []ctgmap.Record{
			{TName: "chr1", QName: "ctgA", QS: 0, QE: 400},
			{TName: "chr1", QName: "ctgB", QS: 0, QE: 400},
		},
		TargetLength: []ctgmap.SeqLength{{ID: 0, Name: "chr1", Length: 1000}},
		QueryLength:  []ctgmap.SeqLength{{ID: 0, Name: "ctgA", Length: 500}, {ID: 1, Name: "ctgB", Length: 500}},
	}

	for i := 0; i < 10; i++ {
		asg, err := Assign(set)
		if err != nil {
			t.Fatalf("Assign() error: %v", err)
		}
		if got := asg.PrimaryQuery["chr1"]; got != "ctgB" {
			t.Fatalf("run %d: PrimaryQuery[chr1] = %q, want ctgB", i, got)
		}
	}
}

func TestAssignSkipsQueryDuplicatesInCoverage(t *testing.T) {
	// The q_dup record carries more chr2 coverage, but only non-duplicate
	// records count toward the tally.
	set := &ctgmap.RecordSet{
		Records: []ctgmap.Record{
			{TName: "chr1", QName: "ctgA", QS: 0, QE: 300},
			{TName: "chr2", QName: "ctgA", QS: 0, QE: 900, QDup: true},
		},
		TargetLength: []ctgmap.SeqLength{{ID: 0, Name: "chr1", Length: 1000}, {ID: 1, Name: "chr2", Length: 1000}},
		QueryLength:  []ctgmap.SeqLength{{ID: 0, Name: "ctgA", Length: 1000}},
	}

	asg, err := Assign(set)
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}
	if got := asg.PrimaryTarget["ctgA"]; got != "chr1" {
		t.Errorf("PrimaryTarget[ctgA] = %q, want chr1", got)
	}
	// The duplicate record is still partitioned (as alternate here).
	if len(asg.AltByTarget["chr2"]) != 1 {
		t.Errorf("AltByTarget[chr2] count = %d, want 1", len(asg.AltByTarget["chr2"]))
	}
}

func TestAssignAllDuplicateQueryIsAlternate(t *testing.T) {
	// A query with only q_dup records earns no primary target; its records
	// are classified alternate.
	set := &ctgmap.RecordSet{
		Records: []ctgmap.Record{
			{TName: "chr1", QName: "ctgA", QS: 0, QE: 300, QDup: true},
		},
		TargetLength: []ctgmap.SeqLength{{ID: 0, Name: "chr1", Length: 1000}},
		QueryLength:  []ctgmap.SeqLength{{ID: 0, Name: "ctgA", Length: 1000}},
	}

	asg, err := Assign(set)
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}
	if _, ok := asg.PrimaryTarget["ctgA"]; ok {
		t.Error("PrimaryTarget[ctgA] should be absent")
	}
	if len(asg.Primary["chr1"]) != 0 {
		t.Errorf("Primary[chr1] count = %d, want 0", len(asg.Primary["chr1"]))
	}
	if len(asg.AltByQuery["ctgA"]) != 1 {
		t.Errorf("AltByQuery[ctgA] count = %d, want 1", len(asg.AltByQuery["ctgA"]))
	}
}

func TestAssignUnknownNames(t *testing.T) {
	tests := []struct {
		name   string
		record ctgmap.Record
	}{
		{"unknown target", ctgmap.Record{TName: "chrX", QName: "ctgA"}},
		{"unknown query", ctgmap.Record{TName: "chr1", QName: "ctgZ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := &ctgmap.RecordSet{
				Records:      []ctgmap.Record{tt.record},
				TargetLength: []ctgmap.SeqLength{{ID: 0, Name: "chr1", Length: 1000}},
				QueryLength:  []ctgmap.SeqLength{{ID: 0, Name: "ctgA", Length: 1000}},
			}
			_, err := Assign(set)
			if !errors.Is(err, errors.ErrCodeInvalidRecord) {
				t.Errorf("error code = %v, want INVALID_RECORD", errors.GetCode(err))
			}
		})
	}
}
