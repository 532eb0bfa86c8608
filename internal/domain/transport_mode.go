package domain

import "sort"

// TransportMode partitions reviews and ratings.
type TransportMode string

const (
	ModeHitchhiking TransportMode = "hitchhiking"
	ModeCycling     TransportMode = "cycling"
	ModeVanLife     TransportMode = "van_life"
	ModeWalking     TransportMode = "walking"
)

// AllTransportModes in canonical order.
var AllTransportModes = []TransportMode{ModeHitchhiking, ModeCycling, ModeVanLife, ModeWalking}

func (m TransportMode) Valid() bool {
	switch m {
	case ModeHitchhiking, ModeCycling, ModeVanLife, ModeWalking:
		return true
	}
	return false
}

// TracksWaitTime reports whether reviews of this mode may carry a wait time.
func (m TransportMode) TracksWaitTime() bool {
	return m == ModeHitchhiking
}

// TracksLegalStatus reports whether reviews of this mode may carry a legal status.
func (m TransportMode) TracksLegalStatus() bool {
	return m == ModeVanLife
}

// TracksFacilities reports whether reviews of this mode may carry facility
// and accessibility ratings.
func (m TransportMode) TracksFacilities() bool {
	return m == ModeCycling || m == ModeWalking
}

// TransportModes is a set of modes kept as a sorted, de-duplicated slice.
type TransportModes []TransportMode

// Normalize removes duplicates and sorts in canonical order.
func (ms TransportModes) Normalize() TransportModes {
	seen := make(map[TransportMode]bool, len(ms))
	out := make(TransportModes, 0, len(ms))
	for _, m := range ms {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return modeRank(out[i]) < modeRank(out[j]) })
	return out
}

func (ms TransportModes) Contains(m TransportMode) bool {
	for _, x := range ms {
		if x == m {
			return true
		}
	}
	return false
}

// Overlaps reports whether the two sets share at least one mode.
func (ms TransportModes) Overlaps(other TransportModes) bool {
	for _, m := range other {
		if ms.Contains(m) {
			return true
		}
	}
	return false
}

// Invalid returns the members that are not known modes.
func (ms TransportModes) Invalid() []TransportMode {
	var bad []TransportMode
	for _, m := range ms {
		if !m.Valid() {
			bad = append(bad, m)
		}
	}
	return bad
}

func (ms TransportModes) Strings() []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = string(m)
	}
	return out
}

func TransportModesFromStrings(ss []string) TransportModes {
	out := make(TransportModes, len(ss))
	for i, s := range ss {
		out[i] = TransportMode(s)
	}
	return out
}

func modeRank(m TransportMode) int {
	for i, x := range AllTransportModes {
		if x == m {
			return i
		}
	}
	return len(AllTransportModes)
}
