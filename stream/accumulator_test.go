package stream

import (
	"errors"
	"iter"
	"testing"
)

// fromSlice adapts a fixed fragment list into the sequence shape Accumulate
// consumes.
func fromSlice(frags []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, f := range frags {
			if !yield(f, nil) {
				return
			}
		}
	}
}

func TestAccumulateConcatenatesInOrder(t *testing.T) {
	tests := []struct {
		name  string
		frags []string
		want  string
	}{
		{"empty", nil, ""},
		{"single", []string{"hello"}, "hello"},
		{"multiple", []string{"You are ", "a helpful ", "assistant."}, "You are a helpful assistant."},
		{"empty_fragments", []string{"", "a", "", "b"}, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var published []string
			got, err := Accumulate(fromSlice(tt.frags), func(full string) {
				published = append(published, full)
			})
			if err != nil {
				t.Fatalf("Accumulate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Accumulate() = %q; want %q", got, tt.want)
			}
			if len(tt.frags) == 0 {
				if len(published) != 0 {
					t.Errorf("publish called %d times for empty stream", len(published))
				}
				return
			}
			if last := published[len(published)-1]; last != tt.want {
				t.Errorf("last published = %q; want %q", last, tt.want)
			}
		})
	}
}

func TestAccumulatePublishesGrowingPrefixes(t *testing.T) {
	var published []string
	_, err := Accumulate(fromSlice([]string{"a", "b", "c"}), func(full string) {
		published = append(published, full)
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "ab", "abc"}
	if len(published) != len(want) {
		t.Fatalf("published %d updates; want %d", len(published), len(want))
	}
	for i := range want {
		if published[i] != want[i] {
			t.Errorf("published[%d] = %q; want %q", i, published[i], want[i])
		}
	}
}

func failingAfter(frags []string, err error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, f := range frags {
			if !yield(f, nil) {
				return
			}
		}
		yield("", err)
	}
}

func TestAccumulateMidStreamFailure(t *testing.T) {
	streamErr := errors.New("connection reset")
	var last string
	got, err := Accumulate(failingAfter([]string{"partial ", "output"}, streamErr), func(full string) {
		last = full
	})
	if !errors.Is(err, streamErr) {
		t.Fatalf("error = %v; want %v", err, streamErr)
	}
	if got != "partial output" {
		t.Errorf("partial accumulation = %q; want %q", got, "partial output")
	}
	if last != "partial output" {
		t.Errorf("last published = %q; want %q", last, "partial output")
	}
}

func TestAccumulateNilPublish(t *testing.T) {
	got, err := Accumulate(fromSlice([]string{"x", "y"}), nil)
	if err != nil || got != "xy" {
		t.Errorf("Accumulate() = %q, %v; want %q, nil", got, err, "xy")
	}
}
