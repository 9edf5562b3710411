package storage

import "context"

// PaymentsKey holds the tracker's ledger document. The surrounding app
// keeps its own documents under "eventflow_user" and
// "eventflowEnterpriseLeads"; those keys belong to outside collaborators
// and must not be reused here.
const PaymentsKey = "eventflow_payments"

// Store is a string-keyed document store. Values are opaque JSON text;
// callers own the whole document under a key and update it with a full
// read-modify-write cycle. Concurrent writers to the same key race with
// last-writer-wins semantics.
type Store interface {
	// Get returns the document and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
