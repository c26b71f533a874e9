package dispatcher

import (
	"fmt"

	"github.com/HelaNetwork/runtime-sdk-go/runtimectx"
	runtimetypes "github.com/HelaNetwork/runtime-sdk-go/types"
)

// Query runs a read-only query against batchCtx, per spec.md §4.1 "Query
// routing": reject unknown names, reject names the node's LocalConfig
// disallows, then run the handler inside a discarded child context so a
// query can never observe or leave behind uncommitted state. A panicking
// handler is recovered and reported as ErrQueryAborted rather than taking
// down the node.
func (d *Dispatcher) Query(batchCtx *runtimectx.Context, name string, args []byte) (result []byte, err error) {
	q, ok := d.queries[name]
	if !ok {
		return nil, runtimetypes.ErrNotFound
	}
	if !d.config.QueryAllowed(name, q.Expensive) {
		return nil, runtimetypes.ErrForbidden
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", runtimetypes.ErrQueryAborted, r)
			result = nil
		}
	}()

	child := batchCtx.NewChildContext(runtimectx.ModeSimulate)
	out, handlerErr := q.Handler(child, args)
	child.Rollback()
	if handlerErr != nil {
		return nil, handlerErr
	}
	return out, nil
}
