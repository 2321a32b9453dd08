package trace

import "errors"

// ErrTruncatedSnapshot means a REZI decode consumed fewer bytes than the
// snapshot blob contained, signaling a corrupt or partial write.
var ErrTruncatedSnapshot = errors.New("trace: snapshot decode consumed fewer bytes than provided")
