package formatter

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/philipp01105/logshim/core"
)

// SerializationError reports a field value that cannot be encoded as JSON.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("formatter: cannot serialize field %q: %v", e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// levelName resolves the wire token for l, wrapping core.ErrUnknownSeverity
// with the offending rank.
func levelName(l core.Level) (string, error) {
	name, err := l.Name()
	if err != nil {
		return "", errors.Wrapf(err, "formatter: level %d", int(l))
	}
	return name, nil
}
