package op

import "errors"

var ErrInvalidScript = errors.New("invalid operation script")
var ErrUnknownAttribute = errors.New("unknown attribute")
var ErrUnknownValue = errors.New("unknown value")
var ErrUnknownKind = errors.New("unknown operation kind")
var ErrOperationCount = errors.New("invalid operation count")
var ErrInvalidCSN = errors.New("invalid operation csn")
var ErrDuplicateCSN = errors.New("duplicate operation csn")
var ErrOldRDNIsTarget = errors.New("rename deletes its own target rdn")
var ErrUnexpectedOldRDN = errors.New("old rdn on a non-rename operation")
var ErrEmptyCatalog = errors.New("catalog has no values")
var ErrCatalogTooLarge = errors.New("catalog has too many values")
var ErrInvalidValueName = errors.New("invalid value name")
var ErrDuplicateValue = errors.New("duplicate value name")
