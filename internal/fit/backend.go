package fit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBackend is returned by BackendByName for unrecognised names
var ErrUnknownBackend = errors.New("unknown p-value backend")

// Backend names accepted by BackendByName
const (
	BackendGonum = "gonum"
	BackendNone  = "none"
)

// BackendByName resolves a configured backend. "none" returns a nil Backend
// so reports fall back to statistic and degrees of freedom only.
func BackendByName(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendGonum:
		return NewGonumBackend(), nil
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownBackend, name, BackendGonum, BackendNone)
	}
}
