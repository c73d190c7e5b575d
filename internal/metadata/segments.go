package metadata

import (
	"strconv"

	"github.com/simonhull/wavesurfer/internal/types"
)

// IsSegmentName reports whether name holds segment data: a "sweep"
// group or a legacy flat "trial" dataset.
func IsSegmentName(name string) bool {
	return len(name) >= 5 && (name[:5] == "sweep" || name[:5] == "trial")
}

// OrderSegments filters names down to segments and arranges them by
// their one-based numeric suffix, so position i holds segment i+1.
// The suffixes must cover 1..N with no gap and no repeat.
func OrderSegments(names []string) ([]string, error) {
	var segments []string
	for _, name := range names {
		if IsSegmentName(name) {
			segments = append(segments, name)
		}
	}

	ordered := make([]string, len(segments))
	for _, name := range segments {
		idx, err := segmentIndex(name)
		if err != nil {
			return nil, err
		}
		if idx < 1 || idx > len(segments) {
			return nil, &types.SegmentIndexError{Index: idx, Count: len(segments), Reason: "out of range"}
		}
		if ordered[idx-1] != "" {
			return nil, &types.SegmentIndexError{Index: idx, Count: len(segments), Reason: "duplicated"}
		}
		ordered[idx-1] = name
	}
	return ordered, nil
}

// segmentIndex parses the numeric suffix of a name like "sweep_0012".
func segmentIndex(name string) (int, error) {
	if len(name) < 7 {
		return 0, &types.SchemaError{Name: name, Reason: "segment name has no numeric suffix"}
	}
	idx, err := strconv.Atoi(name[6:])
	if err != nil {
		return 0, &types.SchemaError{Name: name, Reason: "segment name has no numeric suffix"}
	}
	return idx, nil
}
