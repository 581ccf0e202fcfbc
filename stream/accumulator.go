// Package stream folds ordered text fragments from a model-call stream
// into a running string.
package stream

import (
	"iter"
	"strings"
)

// Accumulate consumes fragments in order and returns their concatenation.
// After each fragment the publish callback receives the full accumulated
// string so far (not the delta). A nil publish is allowed.
//
// If the source fails mid-stream the error is returned together with the
// partial accumulation; whatever was last published stands. The caller
// decides whether partial output is kept or replaced with an error marker.
func Accumulate(frags iter.Seq2[string, error], publish func(full string)) (string, error) {
	var sb strings.Builder
	for frag, err := range frags {
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(frag)
		if publish != nil {
			publish(sb.String())
		}
	}
	return sb.String(), nil
}
