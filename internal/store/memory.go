package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore is an in-process Store used by unit tests. Documents are
// round-tripped through bson on the way in and out so code under test decodes
// exactly what it would decode from MongoDB. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	cols    map[string][]bson.M
	indexes map[string][][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cols:    make(map[string][]bson.M),
		indexes: make(map[string][][]string),
	}
}

// key normalizes a value for equality comparison across the bson round-trip
// (typed strings become string, ints become int32/int64, and so on).
func key(v any) string {
	return fmt.Sprint(v)
}

// compare orders two field values: numerically when both parse as numbers,
// lexicographically otherwise. Zero-padded date/time strings order correctly
// under the lexicographic branch.
func compare(a, b any) int {
	as, bs := key(a), key(b)
	af, aerr := strconv.ParseFloat(as, 64)
	bf, berr := strconv.ParseFloat(bs, 64)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func matches(doc bson.M, f Filter) bool {
	for field, c := range f {
		v, ok := doc[field]
		if !ok {
			return false
		}
		switch c.op {
		case "eq":
			if key(v) != key(c.value) {
				return false
			}
		case "in":
			found := false
			for _, cand := range c.values {
				if key(v) == key(cand) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "gte":
			if compare(v, c.value) < 0 {
				return false
			}
		case "lte":
			if compare(v, c.value) > 0 {
				return false
			}
		}
	}
	return true
}

func toDoc(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, doc any) error {
	m, err := toDoc(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, idx := range s.indexes[collection] {
		for _, existing := range s.cols[collection] {
			same := true
			for _, field := range idx {
				if key(existing[field]) != key(m[field]) {
					same = false
					break
				}
			}
			if same {
				return ErrDuplicateKey
			}
		}
	}
	s.cols[collection] = append(s.cols[collection], m)
	return nil
}

func (s *MemoryStore) FindOne(ctx context.Context, collection string, f Filter, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.cols[collection] {
		if matches(doc, f) {
			raw, err := bson.Marshal(doc)
			if err != nil {
				return err
			}
			return bson.Unmarshal(raw, out)
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) FindMany(ctx context.Context, collection string, f Filter, opts *FindOpts, out any) error {
	// The lock is held through sort and decode: matched aliases the stored
	// maps, which UpdateOne mutates in place under the write lock.
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]bson.M, 0)
	for _, doc := range s.cols[collection] {
		if matches(doc, f) {
			matched = append(matched, doc)
		}
	}

	if opts != nil && len(opts.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, sf := range opts.Sort {
				c := compare(matched[i][sf.Field], matched[j][sf.Field])
				if c == 0 {
					continue
				}
				if sf.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if opts != nil && opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return decodeAll(matched, out)
}

// decodeAll unmarshals matched documents into *[]T or *[]*T.
func decodeAll(docs []bson.M, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return errors.New("out must be a pointer to a slice")
	}
	slice := reflect.MakeSlice(v.Elem().Type(), 0, len(docs))
	elemType := v.Elem().Type().Elem()
	for _, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		if elemType.Kind() == reflect.Ptr {
			ev := reflect.New(elemType.Elem())
			if err := bson.Unmarshal(raw, ev.Interface()); err != nil {
				return err
			}
			slice = reflect.Append(slice, ev)
		} else {
			ev := reflect.New(elemType)
			if err := bson.Unmarshal(raw, ev.Interface()); err != nil {
				return err
			}
			slice = reflect.Append(slice, ev.Elem())
		}
	}
	v.Elem().Set(slice)
	return nil
}

func (s *MemoryStore) UpdateOne(ctx context.Context, collection string, f Filter, set map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.cols[collection] {
		if matches(doc, f) {
			for field, val := range set {
				doc[field] = val
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) EnsureUniqueIndex(ctx context.Context, collection string, fields ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, idx := range s.indexes[collection] {
		if reflect.DeepEqual(idx, fields) {
			return nil
		}
	}
	s.indexes[collection] = append(s.indexes[collection], fields)
	return nil
}
