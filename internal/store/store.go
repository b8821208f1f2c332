package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by FindOne/UpdateOne when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned by Insert when a unique index would be violated.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Cond is a single-field condition. Conditions on different fields compose by
// conjunction; that is the whole filter vocabulary the services need.
type Cond struct {
	op     string // "eq", "in", "gte", "lte"
	value  any
	values []any
}

func Eq(v any) Cond     { return Cond{op: "eq", value: v} }
func In(vs ...any) Cond { return Cond{op: "in", values: vs} }
func Gte(v any) Cond    { return Cond{op: "gte", value: v} }
func Lte(v any) Cond    { return Cond{op: "lte", value: v} }

// Filter maps field names to conditions, all of which must hold.
type Filter map[string]Cond

type SortField struct {
	Field string
	Desc  bool
}

// FindOpts carries optional sort order and a result limit (0 = unlimited).
type FindOpts struct {
	Sort  []SortField
	Limit int64
}

// Store is the document-store access layer. out arguments follow the driver
// convention: a pointer to a struct for FindOne, a pointer to a slice for
// FindMany. The store offers no transactions; callers needing atomic
// check-then-act must serialize themselves or lean on a unique index.
type Store interface {
	Insert(ctx context.Context, collection string, doc any) error
	FindOne(ctx context.Context, collection string, f Filter, out any) error
	FindMany(ctx context.Context, collection string, f Filter, opts *FindOpts, out any) error
	UpdateOne(ctx context.Context, collection string, f Filter, set map[string]any) error
	EnsureUniqueIndex(ctx context.Context, collection string, fields ...string) error
}
