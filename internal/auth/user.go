package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitxp/internal/docstore"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
)

const UsersCollection = "users"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func userFromDocument(doc *docstore.Document) *User {
	return &User{
		ID:           doc.ID,
		Username:     doc.Fields.String("username"),
		PasswordHash: doc.Fields.String("passwordHash"),
		CreatedAt:    doc.CreatedAt,
	}
}

type userRepo struct {
	store docstore.Store
}

// getByUsername returns nil, nil when there is no such user.
func (r *userRepo) getByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get_by_username")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := r.store.Query(ctx, UsersCollection, docstore.Query{
		Filters: []docstore.Filter{docstore.Equal("username", normalizeUsername(username))},
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return userFromDocument(docs[0]), nil
}

func (r *userRepo) create(ctx context.Context, username, passwordHash string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.store.Create(ctx, UsersCollection, "", docstore.Fields{
		"username":     normalizeUsername(username),
		"passwordHash": passwordHash,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return userFromDocument(doc), nil
}
