package gen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for reports and debate sessions.
type IDGenerator func() string

func UUID() IDGenerator {
	return func() string {
		return uuid.Must(uuid.NewRandom()).String()
	}
}

// Sequence yields prefix-1, prefix-2, ... and is safe for concurrent use.
func Sequence(prefix string) IDGenerator {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

func (g IDGenerator) Next() string {
	if g == nil {
		return uuid.Nil.String()
	}

	return g()
}
