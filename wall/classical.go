package wall

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
)

// retryReduction is how much a misbehaving inset's line width is reduced by
// before retrying, per spec.md §4.D.
const retryReduction = data.Micrometer(10)

// GenerateClassical builds the 0..N constant-width concentric insets of
// spec.md §4.D for one part's outline. wallCount is the number of walls
// requested (N = wall_line_count); firstLayer multiplies every line width by
// opts.InitialLayerLineWidthFactor. spiralizeExtra adds extra insets for the
// spiralize-mode odd-bottom-layer case.
//
// Grounded on the teacher's modifier/perimeter.go (single-offset InsetLayer
// call), generalized to the per-index offset ladder and retry logic spec.md
// §4.D requires.
func GenerateClassical(c clip.Clipper, outline data.Paths, opts data.WallOptions, wallCount int, firstLayer bool, spiralizeExtra int) []data.Paths {
	w0, wx, wall0Inset := opts.LineWidth0, opts.LineWidthX, opts.Wall0Inset
	if firstLayer && opts.InitialLayerLineWidthFactor > 0 {
		w0 = data.Micrometer(float64(w0) * opts.InitialLayerLineWidthFactor)
		wx = data.Micrometer(float64(wx) * opts.InitialLayerLineWidthFactor)
	}

	total := wallCount + spiralizeExtra
	if total <= 0 {
		return nil
	}

	insets := make([]data.Paths, 0, total)
	var prev data.Paths
	prevCount := len(outline)

	for i := 0; i < total; i++ {
		var delta data.Micrometer
		var base data.Paths
		switch i {
		case 0:
			delta = -w0/2 - wall0Inset
			base = outline
		case 1:
			delta = -w0/2 + wall0Inset - wx/2
			base = prev
		default:
			delta = -wx
			base = prev
		}

		next := insetOnceWithRetry(c, base, delta, prevCount)
		next = next.Simplify(-1, -1)
		if len(next) == 0 {
			break
		}
		insets = append(insets, next)
		prev = next
		prevCount = len(next)
	}

	return insets
}

// insetOnceWithRetry offsets base by delta; if the result's part count
// "explodes" (>= prevCount+3), it retries with the delta's magnitude reduced
// by retryReduction, adopting the retry only if it strictly reduces the part
// count by at least 3 (spec.md §4.D).
func insetOnceWithRetry(c clip.Clipper, base data.Paths, delta data.Micrometer, prevCount int) data.Paths {
	result := c.Offset(base, delta, clip.JoinMiter)
	if len(result) < prevCount+3 {
		return result
	}

	reduced := delta
	if reduced < 0 {
		reduced += retryReduction
	} else {
		reduced -= retryReduction
	}
	retry := c.Offset(base, reduced, clip.JoinMiter)
	if len(retry) <= len(result)-3 {
		return retry
	}
	return result
}
