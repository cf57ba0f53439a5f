package repository

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"

	"applica-cv/internal/domain"
)

// CVDocumentsRepo is the append-only cv_documents table.
type CVDocumentsRepo struct {
	pool *pgxpool.Pool
}

func NewCVDocumentsRepo(pool *pgxpool.Pool) *CVDocumentsRepo {
	return &CVDocumentsRepo{pool: pool}
}

func (r *CVDocumentsRepo) Insert(ctx context.Context, d *domain.CVDocument) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO cv_documents (id, user_id, template_used, file_url, created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		d.ID, d.UserID, d.TemplateUsed, d.FileURL, d.CreatedAt)
	return errors.Wrap(err, "insert cv_documents row")
}

func (r *CVDocumentsRepo) ListByUser(ctx context.Context, userID string) ([]domain.CVDocument, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id::text, coalesce(template_used, ''), coalesce(file_url, ''), created_at
		FROM cv_documents WHERE user_id::text=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "query cv_documents")
	}
	defer rows.Close()

	out := []domain.CVDocument{}
	for rows.Next() {
		var d domain.CVDocument
		if err := rows.Scan(&d.ID, &d.UserID, &d.TemplateUsed, &d.FileURL, &d.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan cv_documents row")
		}
		out = append(out, d)
	}
	return out, errors.Wrap(rows.Err(), "iterate cv_documents")
}
