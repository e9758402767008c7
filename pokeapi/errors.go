package pokeapi

import "errors"

var (
	// ErrNetwork is returned for transport failures and non-2xx responses.
	ErrNetwork = errors.New("network error")
	// ErrParse is returned when a response body is not the expected JSON.
	ErrParse = errors.New("malformed response")
)
