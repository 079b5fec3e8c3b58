package entry

import (
	"errors"
	"fmt"
)

// ErrContractViolation is the panic value (wrapped) raised when the resolver
// is handed input its callers promised never to produce.
var ErrContractViolation = errors.New("resolver contract violation")

func violation(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...)))
}
