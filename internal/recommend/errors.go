package recommend

import "errors"

var (
	// ErrMoodUnresolved means a mood could not be mapped to a vibe.
	ErrMoodUnresolved = errors.New("recommend: mood could not be resolved to a vibe")
	// ErrMoodUpstream means the mood model could not be reached.
	ErrMoodUpstream = errors.New("recommend: mood resolver unavailable")
	// ErrUpstreamUnavailable means no candidate page could be fetched.
	ErrUpstreamUnavailable = errors.New("recommend: catalog unavailable")
)
