package session

import (
	"context"

	"github.com/lintang-b-s/places-heatmap/pkg/aggregator"
	"github.com/lintang-b-s/places-heatmap/pkg/heatmap"
)

// Outcome is how an accepted submission ended.
type Outcome struct {
	Keyword   string
	Rendered  bool
	NoResults bool
	Points    int
	Color     heatmap.Color
	OverlayID string
	Failures  []aggregator.SubQueryError
	Err       error
}

// Submission is the future of an accepted keyword.
type Submission struct {
	keyword string
	done    chan struct{}
	outcome Outcome
}

func newSubmission(keyword string) *Submission {
	return &Submission{
		keyword: keyword,
		done:    make(chan struct{}),
	}
}

func (s *Submission) resolve(o Outcome) {
	s.outcome = o
	close(s.done)
}

func (s *Submission) Keyword() string {
	return s.keyword
}

// Done is closed once the outcome has been applied to the session.
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the submission is applied or ctx ends.
func (s *Submission) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-s.done:
		return s.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}
