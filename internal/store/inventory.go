package store

import (
	"context"
	"fmt"
	"strings"

	"dealership/internal/models"
)

const vehicleColumns = `i.inv_id, i.classification_id, c.classification_name, i.inv_make, i.inv_model, i.inv_year,
	i.inv_description, i.inv_image, i.inv_thumbnail, i.inv_price, i.inv_miles, i.inv_color`

func scanVehicle(row interface{ Scan(...any) error }) (*models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(&v.ID, &v.ClassificationID, &v.ClassificationName, &v.Make, &v.Model, &v.Year,
		&v.Description, &v.Image, &v.Thumbnail, &v.Price, &v.Miles, &v.Color)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListClassifications returns classifications ordered by name.
func (s *Postgres) ListClassifications(ctx context.Context) ([]models.Classification, error) {
	const op = "store.ListClassifications"

	rows, err := s.db.QueryContext(ctx, `SELECT classification_id, classification_name FROM classification ORDER BY classification_name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.Classification
	for rows.Next() {
		var c models.Classification
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// AddClassification inserts a classification; duplicates yield ErrAlreadyExists.
func (s *Postgres) AddClassification(ctx context.Context, name string) (*models.Classification, error) {
	const op = "store.AddClassification"

	var c models.Classification
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO classification (classification_name) VALUES ($1) RETURNING classification_id, classification_name`,
		strings.TrimSpace(name)).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	return &c, nil
}

// VehiclesByClassification lists the vehicles of one classification.
func (s *Postgres) VehiclesByClassification(ctx context.Context, classificationID int64) ([]models.Vehicle, error) {
	const op = "store.VehiclesByClassification"

	query := `
		SELECT ` + vehicleColumns + `
		FROM inventory AS i
		JOIN classification AS c ON i.classification_id = c.classification_id
		WHERE i.classification_id = $1
		ORDER BY i.inv_make, i.inv_model`

	rows, err := s.db.QueryContext(ctx, query, classificationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// VehicleByID returns one vehicle with its classification name.
func (s *Postgres) VehicleByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	const op = "store.VehicleByID"

	query := `
		SELECT ` + vehicleColumns + `
		FROM inventory AS i
		JOIN classification AS c ON i.classification_id = c.classification_id
		WHERE i.inv_id = $1`

	v, err := scanVehicle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	return v, nil
}

// AddVehicle inserts a vehicle and returns it with its new id.
func (s *Postgres) AddVehicle(ctx context.Context, v models.Vehicle) (*models.Vehicle, error) {
	const op = "store.AddVehicle"

	query := `
		INSERT INTO inventory (classification_id, inv_make, inv_model, inv_year, inv_description,
			inv_image, inv_thumbnail, inv_price, inv_miles, inv_color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING inv_id`

	err := s.db.QueryRowContext(ctx, query,
		v.ClassificationID, v.Make, v.Model, v.Year, v.Description,
		v.Image, v.Thumbnail, v.Price, v.Miles, v.Color,
	).Scan(&v.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	return &v, nil
}

// UpdateVehicle overwrites every editable column of a vehicle.
func (s *Postgres) UpdateVehicle(ctx context.Context, v models.Vehicle) (*models.Vehicle, error) {
	const op = "store.UpdateVehicle"

	query := `
		UPDATE inventory
		SET inv_make = $1, inv_model = $2, inv_description = $3, inv_image = $4, inv_thumbnail = $5,
			inv_price = $6, inv_year = $7, inv_miles = $8, inv_color = $9, classification_id = $10
		WHERE inv_id = $11`

	res, err := s.db.ExecContext(ctx, query,
		v.Make, v.Model, v.Description, v.Image, v.Thumbnail,
		v.Price, v.Year, v.Miles, v.Color, v.ClassificationID, v.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}
	if err := affectedOne(res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &v, nil
}
