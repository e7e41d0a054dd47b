package sentinel

import "errors"

// ErrNotFound is returned (optionally wrapped) by session stores and caches
// when a record does not exist or has outlived its TTL. Services translate
// it into a domain error or treat it as a miss.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var ErrNotFound = errors.New("not found")
