package cache

import "context"

type noop struct{}

// NewNoop returns a cache that never stores anything
func NewNoop() Cache {
	return noop{}
}

func (noop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noop) Set(context.Context, string, []byte)        {}
func (noop) Delete(context.Context, string)             {}
