package scoring

import "github.com/aojudge/standings"

// SplitRuns separates a run list into what the viewer may see and
// what the freeze withholds. The whole list is visible unless the
// operator freeze flag is set, a cutoff is configured and the viewer
// is not privileged.
func SplitRuns(runs []*standings.Run, freezeTime *int64, privileged bool, frozen bool) (visible, hidden []*standings.Run) {
	if !frozen || privileged || freezeTime == nil {
		return runs, nil
	}
	for _, r := range runs {
		if r.Time < *freezeTime {
			visible = append(visible, r)
		} else {
			hidden = append(hidden, r)
		}
	}
	return visible, hidden
}

// MaskPending converts hidden runs into their display form. Audience
// boards fold these alongside the visible runs so frozen cells still
// show how many attempts a team made, just not how they went.
func MaskPending(hidden []*standings.Run) []*standings.Run {
	masked := make([]*standings.Run, 0, len(hidden))
	for _, r := range hidden {
		masked = append(masked, r.Masked())
	}
	return masked
}
