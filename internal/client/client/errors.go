package client

import "errors"

var ErrUnknownBackend = errors.New("unknown storage backend")
