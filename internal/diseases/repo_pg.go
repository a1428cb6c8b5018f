package diseases

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO disease_predictions (
  id, user_id, disease, confidence, severity, affected_plant, image_object, created_at
)
VALUES ($1, (SELECT id FROM users WHERE username = $2), $3, $4, $5, $6, $7, now())`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Username,
		rec.Detection.Disease,
		rec.Detection.Confidence,
		rec.Detection.Severity,
		rec.Detection.AffectedPlant,
		nullableString(rec.ImageObject),
	)
	return err
}

func (r *PGRepo) ListByUsername(ctx context.Context, username string, limit int) ([]Record, error) {
	const query = `
SELECT p.id, u.username, p.disease, p.confidence, p.severity, p.affected_plant, p.image_object, p.created_at
FROM disease_predictions p
JOIN users u ON u.id = p.user_id
WHERE u.username = $1
ORDER BY p.created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var severity sql.NullString
		var plant sql.NullString
		var imageObject sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.Username,
			&rec.Detection.Disease,
			&rec.Detection.Confidence,
			&severity,
			&plant,
			&imageObject,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if severity.Valid {
			rec.Detection.Severity = severity.String
		}
		if plant.Valid {
			rec.Detection.AffectedPlant = plant.String
		}
		if imageObject.Valid {
			rec.ImageObject = imageObject.String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
