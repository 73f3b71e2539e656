package classifier

import "context"

// Op identifies a remote classification-service operation.
type Op string

const (
	OpPostDocument Op = "post_document"
	OpPutDocument  Op = "put_document"
	OpGetDocument  Op = "get_document"
)

// Caller is the minimal interface Document depends on to reach the remote
// classification service. Implementations own transport, auth and encoding.
// A call either succeeds with an HTTP-ish status and a decoded payload, or
// fails with ok == false — there is no finer-grained error taxonomy at this
// layer; the caller decides how to react.
type Caller interface {
	Call(ctx context.Context, op Op, args ...any) (status int, payload map[string]any, ok bool)
}
