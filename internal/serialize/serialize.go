// Package serialize provides the "eager serialization" primitive the
// checkpoint descriptor assembler needs: user-supplied values (a state
// backend, a checkpoint hook factory array) must be turned into bytes at
// compile time so a non-serializable value fails the compile instead of
// failing much later, mid-checkpoint, on the runtime side.
package serialize

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Eager marshals v with sonic and wraps any failure with name, so callers
// can report exactly which configuration object failed to serialize.
// A nil v yields a nil byte slice, not an error — callers treat that as
// "nothing to attach".
func Eager(name string, v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serialize: %s is not serializable: %w", name, err)
	}
	return b, nil
}
