package irrigation

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO irrigation_schedules (
  id, user_id, crop_type, soil_moisture, temperature, humidity, rainfall,
  crop_stage, irrigation_needed, water_amount, schedule, next_irrigation, reasoning, created_at
)
VALUES ($1, (SELECT id FROM users WHERE username = $2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Username,
		rec.Request.CropType,
		rec.Request.SoilMoisture,
		rec.Request.Temperature,
		rec.Request.Humidity,
		rec.Request.Rainfall,
		rec.Request.CropStage,
		rec.Plan.IrrigationNeeded,
		rec.Plan.WaterAmount,
		rec.Plan.Schedule,
		rec.Plan.NextIrrigation,
		rec.Plan.Reasoning,
	)
	return err
}

func (r *PGRepo) ListByUsername(ctx context.Context, username string, limit int) ([]Record, error) {
	const query = `
SELECT s.id, u.username, s.crop_type, s.soil_moisture, s.temperature, s.humidity, s.rainfall,
       s.crop_stage, s.irrigation_needed, s.water_amount, s.schedule, s.next_irrigation, s.reasoning, s.created_at
FROM irrigation_schedules s
JOIN users u ON u.id = s.user_id
WHERE u.username = $1
ORDER BY s.created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var schedule sql.NullString
		var next sql.NullString
		var reason sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.Username,
			&rec.Request.CropType,
			&rec.Request.SoilMoisture,
			&rec.Request.Temperature,
			&rec.Request.Humidity,
			&rec.Request.Rainfall,
			&rec.Request.CropStage,
			&rec.Plan.IrrigationNeeded,
			&rec.Plan.WaterAmount,
			&schedule,
			&next,
			&reason,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if schedule.Valid {
			rec.Plan.Schedule = schedule.String
		}
		if next.Valid {
			rec.Plan.NextIrrigation = next.String
		}
		if reason.Valid {
			rec.Plan.Reasoning = reason.String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
