package postgres

import (
	"context"
	"database/sql"
	"strings"

	"kennel-registry/internal/domain/dogs"

	"github.com/google/uuid"
)

// DogsRepo implementa dogs.Repository sobre Postgres.
//
// Esquema esperado:
//
//	CREATE TABLE dogs (
//	    id            uuid PRIMARY KEY,
//	    cert_id       bigint NOT NULL,
//	    breed         text NOT NULL,
//	    owner         text NOT NULL,
//	    date_of_birth date NOT NULL,
//	    notes         text,
//	    image_url     text NOT NULL,
//	    created_at    timestamptz NOT NULL DEFAULT now()
//	);
//	CREATE INDEX dogs_cert_id_idx ON dogs (cert_id);
type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

// Insert asigna el internal key (uuid) y deja created_at al default del
// server, como manda el contrato del store.
func (r *DogsRepo) Insert(ctx context.Context, d dogs.Dog) (string, error) {
	key := uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dogs (
			id, cert_id,
			breed, owner, date_of_birth,
			notes, image_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		key,
		d.CertID,
		d.Breed,
		d.Owner,
		d.DateOfBirth,
		toNullString(d.Notes),
		d.ImageURL,
	)
	if err != nil {
		return "", err
	}
	return key, nil
}

// GetByCertID exige exactamente un match: la unicidad del cert ID es
// best-effort, y un ID duplicado no debe devolver un registro cualquiera.
func (r *DogsRepo) GetByCertID(ctx context.Context, certID int) (dogs.Dog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, cert_id,
			breed, owner, date_of_birth,
			notes, image_url, created_at
		FROM dogs
		WHERE cert_id = $1
	`, certID)
	if err != nil {
		return dogs.Dog{}, err
	}
	defer rows.Close()

	var (
		found dogs.Dog
		count int
	)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return dogs.Dog{}, err
		}
		found = d
		count++
		if count > 1 {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return dogs.Dog{}, err
	}
	if count != 1 {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return found, nil
}

func (r *DogsRepo) ListAll(ctx context.Context) ([]dogs.Dog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, cert_id,
			breed, owner, date_of_birth,
			notes, image_url, created_at
		FROM dogs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DogsRepo) Remove(ctx context.Context, internalKey string) error {
	internalKey = strings.TrimSpace(internalKey)
	if internalKey == "" {
		return dogs.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE id = $1`, internalKey)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func scanDog(rows *sql.Rows) (dogs.Dog, error) {
	var (
		d     dogs.Dog
		notes sql.NullString
	)
	if err := rows.Scan(
		&d.InternalKey,
		&d.CertID,
		&d.Breed,
		&d.Owner,
		&d.DateOfBirth,
		&notes,
		&d.ImageURL,
		&d.CreatedAt,
	); err != nil {
		return dogs.Dog{}, err
	}
	if notes.Valid {
		d.Notes = notes.String
	}
	return d, nil
}

// notes es nullable: guardamos NULL en vez de string vacío
func toNullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
