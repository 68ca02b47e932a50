package discover

import "errors"

// ErrUpstreamUnavailable means no requested kind could be fetched.
var ErrUpstreamUnavailable = errors.New("discover: catalog unavailable for every requested kind")
