package repositories

import (
	"context"

	"squadron-ops/airboss/internal/constants"
	"squadron-ops/airboss/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type PilotRepository struct {
	db *sqlx.DB
}

func NewPilotRepository(db *sqlx.DB) *PilotRepository {
	return &PilotRepository{db}
}

// ListActive returns a page of active pilots ordered by id.
func (r *PilotRepository) ListActive(ctx context.Context, offset, limit int) ([]entities.Pilot, error) {
	pilots := []entities.Pilot{}
	if err := r.db.SelectContext(ctx, &pilots, constants.GetActivePilots, offset, limit); err != nil {
		return nil, err
	}
	return pilots, nil
}

func (r *PilotRepository) FindByID(ctx context.Context, id int64) (*entities.Pilot, error) {
	var pilot entities.Pilot
	if err := r.db.QueryRowxContext(ctx, constants.GetPilotById, id).StructScan(&pilot); err != nil {
		return nil, err
	}
	return &pilot, nil
}

func (r *PilotRepository) FindByCallSign(ctx context.Context, callSign string) (*entities.Pilot, error) {
	var pilot entities.Pilot
	if err := r.db.QueryRowxContext(ctx, constants.GetPilotByCallSign, callSign).StructScan(&pilot); err != nil {
		return nil, err
	}
	return &pilot, nil
}
