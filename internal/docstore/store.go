package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

const (
	// CreatedAtField orders query results by document creation time.
	CreatedAtField = "$createdAt"
	// MaxLimit is the largest page a single query may return.
	MaxLimit = 500
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidField = errors.New("invalid field name")
	ErrConflict     = errors.New("document already exists")
)

var fieldNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store is a schemaless collection/document store with equality queries.
type Store interface {
	Create(ctx context.Context, collection, id string, fields Fields, permissions []Permission) (*Document, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	Update(ctx context.Context, collection, id string, patch Fields) (*Document, error)
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q Query) ([]*Document, error)
}

type Document struct {
	ID          string
	Collection  string
	Fields      Fields
	Permissions []Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Filter struct {
	Field string
	Value string
}

type Order struct {
	Field string
	Desc  bool
}

type Query struct {
	Filters []Filter
	OrderBy *Order
	Limit   int
}

func Equal(field, value string) Filter {
	return Filter{Field: field, Value: value}
}

func OrderAsc(field string) *Order {
	return &Order{Field: field}
}

func OrderDesc(field string) *Order {
	return &Order{Field: field, Desc: true}
}

func (q Query) validate() error {
	for _, f := range q.Filters {
		if !fieldNameRegex.MatchString(f.Field) {
			return fmt.Errorf("%w: %q", ErrInvalidField, f.Field)
		}
	}
	if q.OrderBy != nil && q.OrderBy.Field != CreatedAtField && !fieldNameRegex.MatchString(q.OrderBy.Field) {
		return fmt.Errorf("%w: %q", ErrInvalidField, q.OrderBy.Field)
	}
	return nil
}

func (q Query) limit() int {
	if q.Limit <= 0 || q.Limit > MaxLimit {
		return MaxLimit
	}
	return q.Limit
}

// Permission grants one action on a document to a role, e.g. read for user:abc.
type Permission struct {
	Action string
	Role   string
}

func (p Permission) String() string {
	return fmt.Sprintf("%s(%s)", p.Action, p.Role)
}

// OwnerPermissions gives the owning user read, update and delete access.
func OwnerPermissions(userID string) []Permission {
	role := "user:" + userID
	return []Permission{
		{Action: "read", Role: role},
		{Action: "update", Role: role},
		{Action: "delete", Role: role},
	}
}
