package classifier

import (
	"context"
	"strings"
)

// Document represents one piece of content submitted to the remote
// spam-classification service. Data is the submission payload (content, author
// metadata, ...); Allow is the verdict, or the moderator override once the
// document has been saved. The remote-assigned signature and the saved flag are
// managed by Save/Find and are read-only to callers.
type Document struct {
	Data  map[string]string
	Allow bool

	signature string
	saved     bool
	caller    Caller
}

// New returns an empty, unsaved document bound to the given caller.
func New(c Caller) *Document {
	return &Document{Data: map[string]string{}, caller: c}
}

// newSaved builds a document already in the saved state, as returned by Find.
// Data is left empty: the remote service never returns the original payload.
func newSaved(c Caller, signature string, allow bool) *Document {
	return &Document{
		Data:      map[string]string{},
		Allow:     allow,
		signature: signature,
		saved:     true,
		caller:    c,
	}
}

// Saved reports whether the document has been persisted to the remote service.
func (d *Document) Saved() bool { return d.saved }

// Signature returns the remote-assigned identifier, empty until saved.
func (d *Document) Signature() string { return d.signature }

// Save submits the document. On the first successful save the normalized Data
// is posted and the server-returned allow/signature are absorbed; afterwards
// Save only transmits the current Allow value keyed to the existing signature
// (Data is never re-sent). Returns false on remote failure, in which case no
// field changes.
func (d *Document) Save(ctx context.Context) bool {
	if d.saved {
		_, _, ok := d.caller.Call(ctx, OpPutDocument, d.signature, map[string]any{"allow": d.Allow})
		if !ok {
			return false
		}
		// the proposed allow value is accepted as-is; no re-confirmation
		// from the response payload.
		return true
	}

	_, payload, ok := d.caller.Call(ctx, OpPostDocument, normalize(d.Data))
	if !ok {
		return false
	}
	// a saved document always carries a signature; a success response
	// without one is treated as a failed call and mutates nothing.
	sig, ok := payload["signature"].(string)
	if !ok || sig == "" {
		return false
	}
	if allow, ok := payload["allow"].(bool); ok {
		d.Allow = allow
	}
	d.signature = sig
	d.saved = true
	return true
}

// Find looks up a previously created document by its signature. Returns nil
// when the remote service fails or does not know the signature. The returned
// document is saved, carries the verdict and the given signature, and has an
// empty Data map.
func Find(ctx context.Context, c Caller, signature string) *Document {
	_, payload, ok := c.Call(ctx, OpGetDocument, signature)
	if !ok {
		return nil
	}
	allow, _ := payload["allow"].(bool)
	return newSaved(c, signature, allow)
}

// normalize rewrites submission keys for the wire format: every underscore in
// a key becomes a dash. Returns a fresh map; the input is not mutated. When
// two keys collide after rewriting the last one written wins.
func normalize(data map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[strings.ReplaceAll(k, "_", "-")] = v
	}
	return out
}
