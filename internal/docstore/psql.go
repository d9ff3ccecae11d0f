package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitxp/internal/telemetry/tracing"
	"github.com/2beens/fitxp/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Schema creates the single table every collection lives in.
const Schema = `
CREATE TABLE IF NOT EXISTS public.document
(
    seq         BIGSERIAL,
    collection  VARCHAR     NOT NULL,
    id          VARCHAR     NOT NULL,
    fields      JSONB       NOT NULL DEFAULT '{}',
    permissions TEXT[]      NOT NULL DEFAULT '{}',
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS ix_document_user ON public.document (collection, (fields->>'userId'));
CREATE INDEX IF NOT EXISTS ix_document_created_at ON public.document (collection, created_at);
`

const selectColumns = `id, collection, fields, permissions, created_at, updated_at`

var _ Store = (*PsqlStore)(nil)

type PsqlStore struct {
	db *pgxpool.Pool
}

func NewPsqlStore(db *pgxpool.Pool) *PsqlStore {
	return &PsqlStore{
		db: db,
	}
}

// Migrate makes sure the document table and its indexes exist.
func (s *PsqlStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create document schema: %w", err)
	}
	return nil
}

func (s *PsqlStore) Create(ctx context.Context, collection, id string, fields Fields, permissions []Permission) (_ *Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.psql.create")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("collection", collection))

	if id == "" {
		id = uuid.NewString()
	}
	fieldsJson, err := marshalFields(fields)
	if err != nil {
		return nil, err
	}

	perms := make([]string, 0, len(permissions))
	for _, p := range permissions {
		perms = append(perms, p.String())
	}

	now := time.Now().UTC()
	row := s.db.QueryRow(ctx, `
		INSERT INTO document (collection, id, fields, permissions, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $5, $5)
		RETURNING `+selectColumns,
		collection, id, fieldsJson, perms, now,
	)
	doc, err := scanDocument(row)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrConflict, collection, id)
		}
		return nil, err
	}
	return doc, nil
}

func (s *PsqlStore) Get(ctx context.Context, collection, id string) (_ *Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.psql.get")
	defer func() {
		if err != nil && !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("collection", collection))

	row := s.db.QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM document
		WHERE collection = $1 AND id = $2
	`, collection, id)
	return scanDocument(row)
}

func (s *PsqlStore) Update(ctx context.Context, collection, id string, patch Fields) (_ *Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.psql.update")
	defer func() {
		if err != nil && !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("collection", collection))

	patchJson, err := marshalFields(patch)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		UPDATE document
		SET fields = fields || $3::jsonb, updated_at = $4
		WHERE collection = $1 AND id = $2
		RETURNING `+selectColumns,
		collection, id, patchJson, time.Now().UTC(),
	)
	return scanDocument(row)
}

func (s *PsqlStore) Delete(ctx context.Context, collection, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.psql.delete")
	defer func() {
		if err != nil && !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("collection", collection))

	tag, err := s.db.Exec(ctx, `DELETE FROM document WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PsqlStore) Query(ctx context.Context, collection string, q Query) (_ []*Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "docstore.psql.query")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("collection", collection))
	span.SetAttributes(attribute.Int("filters", len(q.Filters)))

	if err := q.validate(); err != nil {
		return nil, err
	}

	sql, args := buildQuery(collection, q)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]*Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

func buildQuery(collection string, q Query) (string, []any) {
	var sb strings.Builder
	args := []any{collection}

	sb.WriteString(`SELECT ` + selectColumns + ` FROM document WHERE collection = $1`)
	for _, f := range q.Filters {
		args = append(args, f.Field, f.Value)
		sb.WriteString(fmt.Sprintf(" AND fields->>$%d = $%d", len(args)-1, len(args)))
	}

	direction := "ASC"
	if q.OrderBy != nil && q.OrderBy.Desc {
		direction = "DESC"
	}
	if q.OrderBy == nil || q.OrderBy.Field == CreatedAtField {
		sb.WriteString(fmt.Sprintf(" ORDER BY created_at %s, seq %s", direction, direction))
	} else {
		args = append(args, q.OrderBy.Field)
		sb.WriteString(fmt.Sprintf(" ORDER BY fields->>$%d %s, created_at %s, seq %s", len(args), direction, direction, direction))
	}

	args = append(args, q.limit())
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))

	return sb.String(), args
}

func scanDocument(row pgx.Row) (*Document, error) {
	doc := &Document{}
	var fields map[string]any
	var perms []string
	if err := row.Scan(&doc.ID, &doc.Collection, &fields, &perms, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc.Fields = fields
	if doc.Fields == nil {
		doc.Fields = Fields{}
	}
	for _, p := range perms {
		doc.Permissions = append(doc.Permissions, parsePermission(p))
	}
	return doc, nil
}

func marshalFields(fields Fields) (string, error) {
	if fields == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(fields))
	if err != nil {
		return "", fmt.Errorf("marshal fields: %w", err)
	}
	return string(b), nil
}

// parsePermission reverses Permission.String, e.g. "read(user:abc)".
func parsePermission(s string) Permission {
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Permission{Action: s}
	}
	return Permission{
		Action: s[:open],
		Role:   s[open+1 : len(s)-1],
	}
}
