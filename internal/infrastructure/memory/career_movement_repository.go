package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

var _ repository.CareerMovementRepository = (*CareerMovementRepo)(nil)

// CareerMovementRepo movimientos en memoria.
type CareerMovementRepo struct{ base }

func (r *CareerMovementRepo) Create(_ context.Context, movement *entity.CareerMovement) error {
	return r.with(func(st *state) error {
		if movement.ID == "" {
			movement.ID = uuid.New().String()
		}
		st.movements[movement.ID] = copyMovement(movement)
		return nil
	})
}

func (r *CareerMovementRepo) GetByID(_ context.Context, id string) (*entity.CareerMovement, error) {
	var out *entity.CareerMovement
	err := r.with(func(st *state) error {
		if m, ok := st.movements[id]; ok && !m.IsDeleted() {
			out = copyMovement(m)
		}
		return nil
	})
	return out, err
}

func (r *CareerMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.CareerMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *CareerMovementRepo) Update(_ context.Context, movement *entity.CareerMovement) error {
	return r.with(func(st *state) error {
		stored, ok := st.movements[movement.ID]
		if !ok || stored.Version != movement.Version {
			return domain.NewConcurrencyConflict(entity.EntityCareerMovement, movement.ID, movement.Version)
		}
		movement.Version++
		st.movements[movement.ID] = copyMovement(movement)
		return nil
	})
}

func (r *CareerMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.CareerMovement, int, error) {
	var list []*entity.CareerMovement
	err := r.with(func(st *state) error {
		for _, m := range st.movements {
			if m.IsDeleted() {
				continue
			}
			if f.PersonnelID != "" && m.PersonnelID != f.PersonnelID {
				continue
			}
			if f.Status != nil && m.Status != *f.Status {
				continue
			}
			if f.Type != nil && m.Type != *f.Type {
				continue
			}
			list = append(list, copyMovement(m))
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return page(list, f.Limit, f.Offset), len(list), err
}
