// Package ctgmap holds parsed contig-to-reference alignment records and the
// sequence-length tables they refer to.
//
// The package is a pure record store: it loads the ctgmap JSON document
// (alignment records plus target and query length tables), the optional
// cytoband JSON document, and the optional highlight BED file. It performs
// no layout or projection of its own; those live in render/ribbon.
//
// A record references its sequences by name. Every referenced name must
// appear in the corresponding length table; a record naming an unknown
// sequence is a fatal input error.
package ctgmap

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Record is a single pairwise alignment between a query contig and a
// reference target. Coordinates are half-open base positions; start <= end
// on both axes, but records are not sorted by target start.
//
// Orientation is the strand of this alignment, CtgOrientation the contig's
// overall strand relative to its primary target. The two flags are
// independent: a forward alignment can belong to a contig that is placed
// reverse overall, and vice versa.
type Record struct {
	TName          string `json:"t_name"`
	TS             uint32 `json:"ts"`
	TE             uint32 `json:"te"`
	QName          string `json:"q_name"`
	QS             uint32 `json:"qs"`
	QE             uint32 `json:"qe"`
	CtgLen         uint32 `json:"ctg_len"`
	Orientation    uint32 `json:"orientation"`
	CtgOrientation uint32 `json:"ctg_orientation"`
	TDup           bool   `json:"t_dup"`
	TOvlp          bool   `json:"t_ovlp"`
	QDup           bool   `json:"q_dup"`
	QOvlp          bool   `json:"q_ovlp"`
}

// QuerySpan returns the number of query bases covered by the record.
func (r Record) QuerySpan() uint32 {
	if r.QE >= r.QS {
		return r.QE - r.QS
	}
	return r.QS - r.QE
}

// SeqLength is one entry of a sequence-length table: an ordinal id fixing
// the left-to-right placement order, a unique name, and the sequence length
// in bases. The JSON wire form is a three-element tuple [id, name, length].
type SeqLength struct {
	ID     uint32
	Name   string
	Length uint32
}

// UnmarshalJSON decodes the [id, name, length] tuple form.
func (s *SeqLength) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 3 {
		return fmt.Errorf("sequence length entry: expected 3 fields, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &s.ID); err != nil {
		return fmt.Errorf("sequence length id: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &s.Name); err != nil {
		return fmt.Errorf("sequence length name: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &s.Length); err != nil {
		return fmt.Errorf("sequence length value: %w", err)
	}
	return nil
}

// MarshalJSON encodes the entry back into its tuple form.
func (s SeqLength) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.ID, s.Name, s.Length})
}

// RecordSet is the full parsed ctgmap document: the alignment records and
// the two length tables. Length tables are sorted by (id, name, length)
// before layout; that order fixes target placement and is the sole source
// of determinism for the overview's target ordering.
type RecordSet struct {
	Records      []Record    `json:"records"`
	TargetLength []SeqLength `json:"target_length"`
	QueryLength  []SeqLength `json:"query_length"`
}

// SortLengths sorts both length tables by ordinal id, then name, then length.
func (s *RecordSet) SortLengths() {
	cmp := func(a, b SeqLength) int {
		if a.ID != b.ID {
			if a.ID < b.ID {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		if a.Length != b.Length {
			if a.Length < b.Length {
				return -1
			}
			return 1
		}
		return 0
	}
	slices.SortFunc(s.TargetLength, cmp)
	slices.SortFunc(s.QueryLength, cmp)
}

// TargetLengths returns a name -> length lookup over the target table.
func (s *RecordSet) TargetLengths() map[string]uint32 {
	return lengthsByName(s.TargetLength)
}

// QueryLengths returns a name -> length lookup over the query table.
func (s *RecordSet) QueryLengths() map[string]uint32 {
	return lengthsByName(s.QueryLength)
}

func lengthsByName(entries []SeqLength) map[string]uint32 {
	m := make(map[string]uint32, len(entries))
	for _, e := range entries {
		m[e.Name] = e.Length
	}
	return m
}

// Band is one cytoband annotation: a half-open interval, the band name,
// and the Giemsa stain class used to pick the backbone color. The JSON
// wire form is a four-element tuple [start, end, name, stain].
type Band struct {
	Start uint32
	End   uint32
	Name  string
	Stain string
}

// UnmarshalJSON decodes the [start, end, name, stain] tuple form.
func (b *Band) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 4 {
		return fmt.Errorf("cytoband entry: expected 4 fields, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &b.Start); err != nil {
		return fmt.Errorf("cytoband start: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &b.End); err != nil {
		return fmt.Errorf("cytoband end: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &b.Name); err != nil {
		return fmt.Errorf("cytoband name: %w", err)
	}
	if err := json.Unmarshal(tuple[3], &b.Stain); err != nil {
		return fmt.Errorf("cytoband stain: %w", err)
	}
	return nil
}

// MarshalJSON encodes the band back into its tuple form.
func (b Band) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{b.Start, b.End, b.Name, b.Stain})
}

// Cytobands maps a target name to its ordered band list.
type Cytobands struct {
	Bands map[string][]Band `json:"cytobands"`
}
