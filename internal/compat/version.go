// Package compat detects the WaveSurfer version a file was written by
// and corrects header quirks of older releases.
package compat

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/simonhull/wavesurfer/internal/types"
)

// LatestTested is the newest WaveSurfer release this reader is known
// to handle. Files from newer releases still load, with a warning.
const LatestTested = "0.982"

const untestedVersion = "You are reading a WaveSurfer file version this module was not tested with: " +
	"file version %s, latest version tested: %s"

var overVersionOne = goversion.MustConstraints(goversion.NewConstraint(">= 1.0"))

// Version decodes the header's VersionString. The second return is
// false when the header has no version at all, which marks a file from
// before versions were recorded.
func Version(tree types.Map) (string, bool, error) {
	header, err := tree.Map("header")
	if err != nil {
		return "", false, err
	}
	raw, ok := header.Child("VersionString")
	if !ok {
		return "", false, nil
	}
	text, ok := versionText(raw)
	if !ok {
		return "", false, &types.SchemaError{Name: "VersionString", Reason: "cannot decode version string"}
	}
	return text, true, nil
}

// versionText extracts the version characters from however MATLAB
// chose to store them: a string dataset, a byte array, or an array of
// numeric character codes.
func versionText(v types.Value) (string, bool) {
	switch val := v.(type) {
	case *types.Scalar:
		if s, err := val.Text(); err == nil {
			return trimNul(s), true
		}
	case *types.Array:
		if raw, err := val.Bytes(); err == nil {
			return trimNul(string(raw)), true
		}
		if ss, err := val.Strings(); err == nil && len(ss) > 0 {
			return trimNul(ss[0]), true
		}
		if codes, err := val.Floats(); err == nil {
			b := make([]byte, len(codes))
			for i, c := range codes {
				b[i] = byte(c)
			}
			return trimNul(string(b)), true
		}
	}
	return "", false
}

func trimNul(s string) string {
	return strings.TrimRight(s, "\x00")
}

// Correct checks the file version against latestTested and patches the
// sampling rates that early releases recorded without coercing them to
// a rate the hardware could produce. The tree is modified in place.
// Returned warnings flag versions newer than latestTested.
func Correct(tree types.Map, latestTested string) ([]types.Warning, error) {
	latest, err := goversion.NewVersion(latestTested)
	if err != nil {
		return nil, fmt.Errorf("invalid latest tested version %q: %w", latestTested, err)
	}
	latestFloat, err := strconv.ParseFloat(latestTested, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latest tested version %q: %w", latestTested, err)
	}

	text, present, err := Version(tree)
	if err != nil {
		return nil, err
	}
	if !present {
		// No VersionString means an old old file.
		text = "0.0"
	}

	parsed, err := goversion.NewVersion(text)
	if err != nil {
		return nil, &types.SchemaError{Name: "VersionString", Reason: fmt.Sprintf("cannot parse version %q", text)}
	}

	var warnings []types.Warning
	if overVersionOne.Check(parsed) {
		if parsed.GreaterThan(latest) {
			warnings = append(warnings, types.Warning{
				Stage:   "version",
				Message: fmt.Sprintf(untestedVersion, parsed.Original(), latest.Original()),
			})
		}
	} else if present {
		asFloat, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &types.SchemaError{Name: "VersionString", Reason: fmt.Sprintf("cannot interpret version %q as a number", text)}
		}
		if asFloat > latestFloat {
			warnings = append(warnings, types.Warning{
				Stage:   "version",
				Message: fmt.Sprintf(untestedVersion, text, latestTested),
			})
		}
	}

	if !overVersionOne.Check(parsed) && needsRateFix(parsed) {
		if err := fixRates(tree); err != nil {
			return nil, err
		}
	}
	return warnings, nil
}

// needsRateFix inspects the digits of the minor version. Version 0.912
// has the problem, version 0.913 does not.
func needsRateFix(v *goversion.Version) bool {
	d := strconv.Itoa(v.Segments()[1])
	return d[0] < '9' ||
		(len(d) >= 2 && d[1] < '1') ||
		(len(d) >= 3 && d[1] <= '1' && d[2] <= '2')
}

// fixRates recomputes the acquisition and stimulation sample rates
// from the 100 MHz timebase. The boards floor the acquisition divisor
// but round the stimulation divisor.
func fixRates(tree types.Map) error {
	header, err := tree.Map("header")
	if err != nil {
		return err
	}
	if err := fixRate(header, "Acquisition", "acquisition sample rate", math.Floor); err != nil {
		return err
	}
	return fixRate(header, "Stimulation", "stimulation sample rate", math.RoundToEven)
}

func fixRate(header types.Map, section, what string, quantize func(float64) float64) error {
	sub, err := header.Map(section)
	if err != nil {
		return &types.LookupError{What: what}
	}
	s, err := sub.Scalar("SampleRate")
	if err != nil {
		return &types.LookupError{What: what}
	}
	nominal, err := s.Float()
	if err != nil {
		return &types.LookupError{What: what}
	}

	ticksPerSample := 100.0e6 / nominal
	if ticksPerSample != math.Trunc(ticksPerSample) {
		sub["SampleRate"] = types.Float(100.0e6 / quantize(ticksPerSample))
	}
	return nil
}
