package orn

import "errors"

var ErrBatchTailMismatch = errors.New("log batch end header does not match fetched header batch tail")
var ErrBatchDiscontinuity = errors.New("fetched headers do not form a parent-linked chain")
var ErrLogOutsideBatch = errors.New("log references a block outside the fetched header batch")
var ErrUnknownEventSignature = errors.New("no handler for event signature")
var ErrMalformedEvent = errors.New("event payload has unexpected shape")
