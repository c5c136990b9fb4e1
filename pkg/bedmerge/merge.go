// Package bedmerge merges BED intervals across labeled input sets.
//
// Inputs are listed in a manifest file of "label<TAB>path" lines. Every
// BED file contributes intervals tagged with its label and the line's
// annotation column. A single sweep over the per-sequence sorted intervals
// groups everything that overlaps transitively, and the writer emits one
// merged line per group followed by its annotated members.
//
// Useful for identifying regions unique to one labeled set (e.g. one
// haplotype) among several callers. Output ordering is fully determined by
// the input data: sequence names and intervals are emitted sorted.
package bedmerge

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ctgplot/ctgplot/pkg/errors"
)

// Interval is one annotated BED interval tagged with the label of the
// input set it came from.
type Interval struct {
	Start      uint32
	End        uint32
	Label      string
	Annotation string
}

// Source pairs an input label with the BED file it tags.
type Source struct {
	Label string
	Path  string
}

// Group is a maximal run of transitively overlapping intervals on one
// sequence, with the union span they cover.
type Group struct {
	Start     uint32
	End       uint32
	Intervals []Interval
}

// ReadSources parses the input manifest: one "label<TAB>path" line per
// BED file. Blank lines are skipped.
func ReadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open input list %s", path)
	}
	defer f.Close()

	var sources []Source
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s:%d: expected \"label<TAB>path\", got %q", path, lineNo, line)
		}
		sources = append(sources, Source{Label: fields[0], Path: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read input list %s", path)
	}
	return sources, nil
}

// Collect reads every source BED file into a per-sequence interval
// collection. Lines need at least four tab-separated fields:
// sequence, start, end, annotation. Lines starting with '#' are skipped.
func Collect(sources []Source) (map[string][]Interval, error) {
	collection := make(map[string][]Interval)
	for _, src := range sources {
		if err := readBED(src, collection); err != nil {
			return nil, err
		}
	}
	return collection, nil
}

func readBED(src Source, into map[string][]Interval) error {
	f, err := os.Open(src.Path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open bed file %s", src.Path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			return errors.New(errors.ErrCodeInvalidBED, "%s:%d: expected at least 4 tab-separated fields, got %d", src.Path, lineNo, len(fields))
		}
		begin, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidBED, err, "%s:%d: invalid start position %q", src.Path, lineNo, fields[1])
		}
		end, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidBED, err, "%s:%d: invalid end position %q", src.Path, lineNo, fields[2])
		}
		into[fields[0]] = append(into[fields[0]], Interval{
			Start:      uint32(begin),
			End:        uint32(end),
			Label:      src.Label,
			Annotation: fields[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidBED, err, "failed to read bed file %s", src.Path)
	}
	return nil
}

// GroupIntervals sorts the intervals and sweeps them left to right,
// cutting a new group whenever the next interval starts past the running
// group end. The input slice is sorted in place.
func GroupIntervals(intervals []Interval) []Group {
	if len(intervals) == 0 {
		return nil
	}

	slices.SortFunc(intervals, func(a, b Interval) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(a.End, b.End); c != 0 {
			return c
		}
		if c := strings.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return strings.Compare(a.Annotation, b.Annotation)
	})

	var groups []Group
	current := Group{Start: intervals[0].Start, End: intervals[0].End}
	for _, itvl := range intervals {
		if current.End < itvl.Start {
			groups = append(groups, current)
			current = Group{Start: itvl.Start, End: itvl.End, Intervals: []Interval{itvl}}
			continue
		}
		current.Intervals = append(current.Intervals, itvl)
		if current.End < itvl.End {
			current.End = itvl.End
		}
	}
	if len(current.Intervals) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// Write emits the merged BED. For every group, one summary line
//
//	seq  start  end  merged:<distinct labels>:<interval count>
//
// is followed by the member intervals, each annotated
//
//	<label>:<annotation>:<group start>-<group end>:<distinct labels>:<label's interval count>
//
// in the fourth column.
func Write(w io.Writer, collection map[string][]Interval) error {
	keys := make([]string, 0, len(collection))
	for k := range collection {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		for _, group := range GroupIntervals(collection[key]) {
			if len(group.Intervals) == 0 || group.Start > group.End {
				continue
			}

			labelCount := make(map[string]uint32)
			total := 0
			for _, itvl := range group.Intervals {
				labelCount[itvl.Label]++
				total++
			}

			if _, err := fmt.Fprintf(w, "%s\t%d\t%d\tmerged:%d:%d\n",
				key, group.Start, group.End, len(labelCount), total); err != nil {
				return errors.Wrap(errors.ErrCodeWriteFailed, err, "failed to write merged bed")
			}

			for _, itvl := range group.Intervals {
				if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s:%s:%d-%d:%d:%d\n",
					key, itvl.Start, itvl.End, itvl.Label, itvl.Annotation,
					group.Start, group.End, len(labelCount), labelCount[itvl.Label]); err != nil {
					return errors.Wrap(errors.ErrCodeWriteFailed, err, "failed to write merged bed")
				}
			}
		}
	}
	return nil
}

// MergeFiles runs the full pipeline: read the manifest, collect every BED,
// and write the merged output to path.
func MergeFiles(inputList, outputPath string) error {
	sources, err := ReadSources(inputList)
	if err != nil {
		return err
	}
	collection, err := Collect(sources)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "failed to create output file %s", outputPath)
	}
	defer out.Close()

	bw := bufio.NewWriter(out)
	if err := Write(bw, collection); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "failed to write output file %s", outputPath)
	}
	return nil
}
