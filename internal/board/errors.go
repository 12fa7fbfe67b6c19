package board

import (
	"github.com/pkg/errors"

	"noticeboard/internal/storage/remote"
)

var (
	// ErrNotFound is returned when an id is missing from the local cache.
	ErrNotFound = errors.New("notice not found")

	// ErrCreationDisabled is returned for a submit without an edit session.
	ErrCreationDisabled = errors.New("creating new notices is disabled")
)

// Kind classifies the failures a board operation can report.
type Kind int

const (
	KindNone Kind = iota
	KindNetwork
	KindServer
	KindDecode
	KindTooLarge
	KindNotFoundLocal
	KindOperationDisabled
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network_failure"
	case KindServer:
		return "server_error"
	case KindDecode:
		return "decode_failure"
	case KindTooLarge:
		return "response_too_large"
	case KindNotFoundLocal:
		return "not_found_local"
	case KindOperationDisabled:
		return "operation_disabled"
	default:
		return "unknown"
	}
}

// KindOf reports which kind of failure err is.
func KindOf(err error) Kind {
	var statusErr *remote.StatusError
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &statusErr):
		return KindServer
	case errors.Is(err, remote.ErrNetwork):
		return KindNetwork
	case errors.Is(err, remote.ErrDecode):
		return KindDecode
	case errors.Is(err, remote.ErrTooLarge):
		return KindTooLarge
	case errors.Is(err, ErrNotFound):
		return KindNotFoundLocal
	case errors.Is(err, ErrCreationDisabled):
		return KindOperationDisabled
	default:
		return KindUnknown
	}
}
