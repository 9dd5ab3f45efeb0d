package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo puestos en memoria.
type PositionRepo struct{ base }

func (r *PositionRepo) Create(_ context.Context, position *entity.Position) error {
	return r.with(func(st *state) error {
		for _, p := range st.positions {
			if !p.IsDeleted() && p.Code == position.Code {
				return domain.NewDuplicate(entity.EntityPosition, "code", position.Code)
			}
		}
		if position.ID == "" {
			position.ID = uuid.New().String()
		}
		st.positions[position.ID] = copyPosition(position)
		return nil
	})
}

func (r *PositionRepo) GetByID(_ context.Context, id string) (*entity.Position, error) {
	var out *entity.Position
	err := r.with(func(st *state) error {
		if p, ok := st.positions[id]; ok && !p.IsDeleted() {
			out = copyPosition(p)
		}
		return nil
	})
	return out, err
}

func (r *PositionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Position, error) {
	return r.GetByID(ctx, id)
}

func (r *PositionRepo) GetByCode(_ context.Context, code string) (*entity.Position, error) {
	var out *entity.Position
	err := r.with(func(st *state) error {
		for _, p := range st.positions {
			if !p.IsDeleted() && p.Code == code {
				out = copyPosition(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *PositionRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	p, err := r.GetByCode(ctx, code)
	return p != nil, err
}

func (r *PositionRepo) Update(_ context.Context, position *entity.Position) error {
	return r.with(func(st *state) error {
		stored, ok := st.positions[position.ID]
		if !ok || stored.Version != position.Version {
			return domain.NewConcurrencyConflict(entity.EntityPosition, position.ID, position.Version)
		}
		position.Version++
		st.positions[position.ID] = copyPosition(position)
		return nil
	})
}

func (r *PositionRepo) ListByStructure(_ context.Context, structureID string, limit, offset int) ([]*entity.Position, error) {
	var list []*entity.Position
	err := r.with(func(st *state) error {
		for _, p := range st.positions {
			if !p.IsDeleted() && p.StructureID == structureID {
				list = append(list, copyPosition(p))
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return page(list, limit, offset), err
}

func (r *PositionRepo) CountByStructure(_ context.Context, structureID string) (entity.PositionCounters, error) {
	var c entity.PositionCounters
	err := r.with(func(st *state) error {
		for _, p := range st.positions {
			if p.IsDeleted() || p.StructureID != structureID || p.Status == entity.PositionStatusAbolished {
				continue
			}
			c.Total++
			switch p.Status {
			case entity.PositionStatusOccupied:
				c.Occupied++
			case entity.PositionStatusVacant:
				c.Vacant++
			}
		}
		return nil
	})
	return c, err
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
