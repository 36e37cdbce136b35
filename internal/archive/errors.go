package archive

import "errors"

// ErrInvalid covers a missing or unreadable manifest, an unsupported format
// version and a checksum mismatch. Restore never writes anything once it is
// raised.
var ErrInvalid = errors.New("archive is invalid")
