package corotask

import "errors"

const Namespace = "corotask"

var (
	ErrInvalidState     = errors.New(Namespace + ": frame is not in a valid state for this operation")
	ErrTaskPanicked     = errors.New(Namespace + ": task body panicked")
	ErrSchedulingFailed = errors.New(Namespace + ": scheduler rejected work")
	ErrFrameDestroyed   = errors.New(Namespace + ": frame already destroyed")
	ErrHandleConsumed   = errors.New(Namespace + ": handle already started or discarded")
)
