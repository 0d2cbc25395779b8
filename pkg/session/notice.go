package session

import (
	"fmt"
	"time"

	"github.com/lintang-b-s/places-heatmap/pkg/aggregator"
)

type NoticeKind int

const (
	NoticeRendered NoticeKind = iota
	NoticeNoResults
	NoticeDuplicateKeyword
	NoticeCapacityReached
	NoticeMalformedRequest
	NoticeCannotConnect
	NoticeCannotProcess
	NoticeRenderFailed
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeRendered:
		return "rendered"
	case NoticeNoResults:
		return "no_results"
	case NoticeDuplicateKeyword:
		return "duplicate_keyword"
	case NoticeCapacityReached:
		return "capacity_reached"
	case NoticeMalformedRequest:
		return "malformed_request"
	case NoticeCannotConnect:
		return "cannot_connect"
	case NoticeCannotProcess:
		return "cannot_process"
	default:
		return "render_failed"
	}
}

func (k NoticeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Notice model info
//
//	@Description	a short user facing message about a submission.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Keyword string     `json:"keyword"`
	Message string     `json:"message"`
	Time    time.Time  `json:"time"`
}

func newNotice(kind NoticeKind, keyword, message string) Notice {
	return Notice{
		Kind:    kind,
		Keyword: keyword,
		Message: message,
		Time:    time.Now(),
	}
}

func subQueryNotice(ev aggregator.SubQueryError) Notice {
	switch ev.Kind {
	case aggregator.MalformedRequest:
		return newNotice(NoticeMalformedRequest, ev.Keyword, "Error processing Places API URL")
	case aggregator.CannotProcess:
		return newNotice(NoticeCannotProcess, ev.Keyword, "Cannot process JSON results")
	default:
		return newNotice(NoticeCannotConnect, ev.Keyword, "Error connecting to Places API")
	}
}

func duplicateMessage() string {
	return "This keyword has already been inputted :("
}

func capacityMessage(max int) string {
	return fmt.Sprintf("You can only input %d keywords. :(", max)
}

func noResultsMessage() string {
	return "No results for this query :("
}
