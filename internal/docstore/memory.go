package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps documents in process memory. Used by tests and the
// "memory" storage mode.
type MemoryStore struct {
	mutex       sync.Mutex
	collections map[string]map[string]*Document
	// monotonic sequence keeps creation order stable for equal timestamps
	seq   map[string]int64
	next  int64
	nowFn func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]*Document),
		seq:         make(map[string]int64),
		nowFn:       time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, collection, id string, fields Fields, permissions []Permission) (*Document, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*Document)
		s.collections[collection] = docs
	}
	if _, exists := docs[id]; exists {
		return nil, fmt.Errorf("%w: %s/%s", ErrConflict, collection, id)
	}

	cloned, err := fields.clone()
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	doc := &Document{
		ID:          id,
		Collection:  collection,
		Fields:      cloned,
		Permissions: append([]Permission(nil), permissions...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	docs[id] = doc
	s.next++
	s.seq[collection+"/"+id] = s.next

	return copyDocument(doc)
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (*Document, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDocument(doc)
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, patch Fields) (*Document, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}

	cloned, err := patch.clone()
	if err != nil {
		return nil, err
	}
	for k, v := range cloned {
		doc.Fields[k] = v
	}
	doc.UpdatedAt = s.nowFn()

	return copyDocument(doc)
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return ErrNotFound
	}
	delete(s.collections[collection], id)
	delete(s.seq, collection+"/"+id)
	return nil
}

func (s *MemoryStore) Query(_ context.Context, collection string, q Query) ([]*Document, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	matched := make([]*Document, 0)
	for _, doc := range s.collections[collection] {
		if matchesAll(doc, q.Filters) {
			matched = append(matched, doc)
		}
	}

	order := q.OrderBy
	if order == nil {
		order = OrderAsc(CreatedAtField)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if order.Desc {
			return s.less(matched[j], matched[i], order.Field)
		}
		return s.less(matched[i], matched[j], order.Field)
	})

	limit := q.limit()
	if len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]*Document, 0, len(matched))
	for _, doc := range matched {
		c, err := copyDocument(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *MemoryStore) less(a, b *Document, field string) bool {
	if field != CreatedAtField {
		av, bv := a.Fields.String(field), b.Fields.String(field)
		if av != bv {
			return av < bv
		}
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return s.seq[a.Collection+"/"+a.ID] < s.seq[b.Collection+"/"+b.ID]
}

func matchesAll(doc *Document, filters []Filter) bool {
	for _, f := range filters {
		if doc.Fields.String(f.Field) != f.Value {
			return false
		}
	}
	return true
}

func copyDocument(doc *Document) (*Document, error) {
	fields, err := doc.Fields.clone()
	if err != nil {
		return nil, err
	}
	c := *doc
	c.Fields = fields
	c.Permissions = append([]Permission(nil), doc.Permissions...)
	return &c, nil
}
