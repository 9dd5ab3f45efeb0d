package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

var _ repository.StructureRepository = (*StructureRepo)(nil)

// StructureRepo estructuras en memoria.
type StructureRepo struct{ base }

func (r *StructureRepo) Create(_ context.Context, structure *entity.Structure) error {
	return r.with(func(st *state) error {
		if structure.ID == "" {
			structure.ID = uuid.New().String()
		}
		for _, existing := range st.structures {
			if existing.Code == structure.Code {
				return domain.NewDuplicate(entity.EntityStructure, "code", structure.Code)
			}
		}
		st.structures[structure.ID] = copyStructure(structure)
		return nil
	})
}

func (r *StructureRepo) GetByID(_ context.Context, id string) (*entity.Structure, error) {
	var out *entity.Structure
	err := r.with(func(st *state) error {
		if s, ok := st.structures[id]; ok {
			out = copyStructure(s)
		}
		return nil
	})
	return out, err
}

func (r *StructureRepo) UpdateCounters(_ context.Context, structure *entity.Structure) error {
	return r.with(func(st *state) error {
		stored, ok := st.structures[structure.ID]
		if !ok || stored.Version != structure.Version {
			return domain.NewConcurrencyConflict(entity.EntityStructure, structure.ID, structure.Version)
		}
		structure.Version++
		st.structures[structure.ID] = copyStructure(structure)
		return nil
	})
}
