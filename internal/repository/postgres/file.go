package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/telemark/telemark-server/internal/model"
)

var _ model.FileStore = (*FileRepository)(nil)

type FileRepository struct {
	db *Connection
}

func NewFileRepository(db *Connection) *FileRepository {
	return &FileRepository{
		db: db,
	}
}

func (r *FileRepository) Create(ctx context.Context, file model.ReferenceFile) (model.ReferenceFile, error) {
	query := `
		INSERT INTO reference_files (id, owner_id, name, object_key, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_id, name, object_key, created_at`

	var saved model.ReferenceFile
	err := r.db.QueryRow(ctx, query,
		file.ID, file.OwnerID, file.Name, file.ObjectKey, file.CreatedAt,
	).Scan(&saved.ID, &saved.OwnerID, &saved.Name, &saved.ObjectKey, &saved.CreatedAt)
	if err != nil {
		return model.ReferenceFile{}, err
	}

	return saved, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.ReferenceFile, error) {
	query := `
		SELECT f.id, f.owner_id, f.name, f.object_key, f.created_at
		FROM reference_files f
		WHERE f.id = $1`

	var file model.ReferenceFile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID, &file.OwnerID, &file.Name, &file.ObjectKey, &file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ReferenceFile{}, model.ErrNotFound
		}
		return model.ReferenceFile{}, err
	}

	return file, nil
}

func (r *FileRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.ReferenceFile, error) {
	query := `
		SELECT f.id, f.owner_id, f.name, f.object_key, f.created_at
		FROM reference_files f
		WHERE f.owner_id = $1
		ORDER BY f.created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFiles(rows)
}

func (r *FileRepository) FilterByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]model.ReferenceFile, error) {
	query := `
		SELECT f.id, f.owner_id, f.name, f.object_key, f.created_at
		FROM reference_files f
		WHERE f.owner_id = $1 AND f.id = ANY($2)
		ORDER BY f.created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFiles(rows)
}

func scanFiles(rows pgx.Rows) ([]model.ReferenceFile, error) {
	var files []model.ReferenceFile
	for rows.Next() {
		var file model.ReferenceFile
		if err := rows.Scan(&file.ID, &file.OwnerID, &file.Name, &file.ObjectKey, &file.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}
