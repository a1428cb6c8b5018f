package crops

import (
	"context"
	"database/sql"
	"encoding/json"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO crop_predictions (
  id, user_id, nitrogen, phosphorus, potassium, temperature, humidity, ph, rainfall,
  recommended_crop, confidence, alternative_crops, reasoning, created_at
)
VALUES ($1, (SELECT id FROM users WHERE username = $2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())`
	var alternatives any
	if rec.Recommendation.AlternativeCrops != nil {
		raw, err := json.Marshal(rec.Recommendation.AlternativeCrops)
		if err != nil {
			return err
		}
		alternatives = raw
	}
	var confidence any
	if rec.Recommendation.Confidence != nil {
		confidence = *rec.Recommendation.Confidence
	}
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Username,
		rec.Request.Nitrogen,
		rec.Request.Phosphorus,
		rec.Request.Potassium,
		rec.Request.Temperature,
		rec.Request.Humidity,
		rec.Request.PH,
		rec.Request.Rainfall,
		rec.Recommendation.RecommendedCrop,
		confidence,
		alternatives,
		rec.Recommendation.Reasoning,
	)
	return err
}

func (r *PGRepo) ListByUsername(ctx context.Context, username string, limit int) ([]Record, error) {
	const query = `
SELECT p.id, u.username, p.nitrogen, p.phosphorus, p.potassium, p.temperature, p.humidity, p.ph, p.rainfall,
       p.recommended_crop, p.confidence, p.alternative_crops, p.reasoning, p.created_at
FROM crop_predictions p
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
		var confidence sql.NullFloat64
		var alternatives []byte
		var reason sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.Username,
			&rec.Request.Nitrogen,
			&rec.Request.Phosphorus,
			&rec.Request.Potassium,
			&rec.Request.Temperature,
			&rec.Request.Humidity,
			&rec.Request.PH,
			&rec.Request.Rainfall,
			&rec.Recommendation.RecommendedCrop,
			&confidence,
			&alternatives,
			&reason,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if confidence.Valid {
			value := confidence.Float64
			rec.Recommendation.Confidence = &value
		}
		if len(alternatives) > 0 {
			if err := json.Unmarshal(alternatives, &rec.Recommendation.AlternativeCrops); err != nil {
				return nil, err
			}
		}
		if reason.Valid {
			rec.Recommendation.Reasoning = reason.String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
