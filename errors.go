package multidict

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned by strict lookups when no source holds the key.
	ErrNotFound = errors.New("key not found")

	// ErrTypeMismatch is returned when a value of an unsupported type is
	// passed where names or header pairs are expected.
	ErrTypeMismatch = errors.New("type mismatch")
)

func notFound(key string) error {
	return errors.Wrapf(ErrNotFound, "%#v", key)
}
