package ctgmap

import (
	"bufio"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/ctgplot/ctgplot/pkg/errors"
)

// LoadRecordSet reads and parses a ctgmap JSON document. The returned set
// has both length tables sorted and every record validated against them.
func LoadRecordSet(path string) (*RecordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open ctgmap file %s", path)
	}

	var set RecordSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse ctgmap file %s", path)
	}

	set.SortLengths()
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Validate checks that every record references a target and query present
// in the length tables. A missing entry is a fatal input error.
func (s *RecordSet) Validate() error {
	targets := s.TargetLengths()
	queries := s.QueryLengths()
	for _, r := range s.Records {
		if _, ok := targets[r.TName]; !ok {
			return errors.New(errors.ErrCodeInvalidRecord, "record references unknown target %q", r.TName)
		}
		if _, ok := queries[r.QName]; !ok {
			return errors.New(errors.ErrCodeInvalidRecord, "record references unknown query %q", r.QName)
		}
	}
	return nil
}

// LoadCytobands reads and parses a cytoband JSON document.
func LoadCytobands(path string) (*Cytobands, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open cytoband file %s", path)
	}

	var bands Cytobands
	if err := json.Unmarshal(data, &bands); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse cytoband file %s", path)
	}
	return &bands, nil
}

// LoadHighlights reads a tab-separated highlight BED file mapping a target
// name to regions rendered as overlays. Lines starting with '#' and blank
// lines are ignored. Each remaining line needs at least three fields:
// name, start, end. Extra fields are allowed and ignored.
func LoadHighlights(path string) (map[string][][2]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open bed file %s", path)
	}
	defer f.Close()

	regions := make(map[string][][2]uint32)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, errors.New(errors.ErrCodeInvalidBED, "%s:%d: expected at least 3 tab-separated fields, got %d", path, lineNo, len(fields))
		}
		begin, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBED, err, "%s:%d: invalid start position %q", path, lineNo, fields[1])
		}
		end, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBED, err, "%s:%d: invalid end position %q", path, lineNo, fields[2])
		}
		regions[fields[0]] = append(regions[fields[0]], [2]uint32{uint32(begin), uint32(end)})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBED, err, "failed to read bed file %s", path)
	}
	return regions, nil
}
