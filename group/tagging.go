package group

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// TaggedError exposes correlation metadata for a task tree's failure.
type TaggedError interface {
	error
	Unwrap() error
	TaskID() uuid.UUID
	TaskIndex() int
}

type taggedError struct {
	err   error
	id    uuid.UUID
	index int
}

func newTaggedError(err error, id uuid.UUID, index int) error {
	if err == nil {
		return nil
	}
	return &taggedError{err: err, id: id, index: index}
}

func (e *taggedError) Error() string     { return e.err.Error() }
func (e *taggedError) Unwrap() error     { return e.err }
func (e *taggedError) TaskID() uuid.UUID { return e.id }
func (e *taggedError) TaskIndex() int    { return e.index }

func (e *taggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(index=%d,id=%s): %+v", e.index, e.id, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskID returns the task ID from err if present.
func ExtractTaskID(err error) (uuid.UUID, bool) {
	var te TaggedError
	if errors.As(err, &te) {
		return te.TaskID(), true
	}
	return uuid.UUID{}, false
}

// ExtractTaskIndex returns the task index from err if present.
func ExtractTaskIndex(err error) (int, bool) {
	var te TaggedError
	if errors.As(err, &te) {
		return te.TaskIndex(), true
	}
	return 0, false
}
