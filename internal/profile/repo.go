package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitxp/internal/docstore"
	"github.com/2beens/fitxp/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// Repo keeps one profile document per user, keyed by the user id.
type Repo struct {
	store docstore.Store
}

func NewRepo(store docstore.Store) *Repo {
	return &Repo{
		store: store,
	}
}

// GetByUserID returns nil, nil when the user has no profile.
func (r *Repo) GetByUserID(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, nil
	}

	doc, err := r.store.Get(ctx, Collection, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return fromDocument(doc), nil
}

func (r *Repo) CreateDefault(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, errors.New("create profile: empty user id")
	}

	doc, err := r.store.Create(ctx, Collection, userID, newDefault(userID).toFields(), docstore.OwnerPermissions(userID))
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return fromDocument(doc), nil
}

// Ensure returns the existing profile or creates a default one.
func (r *Repo) Ensure(ctx context.Context, userID string) (*Profile, error) {
	existing, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	created, err := r.CreateDefault(ctx, userID)
	if errors.Is(err, docstore.ErrConflict) {
		// created in between by a concurrent request
		return r.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	log.Debugf("profile: created default profile for user [%s]", userID)
	return created, nil
}

// Update applies patch and returns the stored profile. An empty patch only
// reads the profile.
func (r *Repo) Update(ctx context.Context, userID string, patch Patch) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := patch.validate(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		p, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, docstore.ErrNotFound
		}
		return p, nil
	}

	doc, err := r.store.Update(ctx, Collection, userID, patch.toFields())
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return fromDocument(doc), nil
}
