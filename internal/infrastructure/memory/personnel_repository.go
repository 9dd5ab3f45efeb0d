package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

var _ repository.PersonnelRepository = (*PersonnelRepo)(nil)

// PersonnelRepo personal en memoria.
type PersonnelRepo struct{ base }

func (r *PersonnelRepo) Create(_ context.Context, personnel *entity.Personnel) error {
	return r.with(func(st *state) error {
		if personnel.RegistrationNumber != nil {
			for _, p := range st.personnel {
				if p.RegistrationNumber != nil && *p.RegistrationNumber == *personnel.RegistrationNumber {
					return domain.NewDuplicate(entity.EntityPersonnel, "registration_number", *personnel.RegistrationNumber)
				}
			}
		}
		if personnel.ID == "" {
			personnel.ID = uuid.New().String()
		}
		st.personnel[personnel.ID] = copyPersonnel(personnel)
		return nil
	})
}

func (r *PersonnelRepo) GetByID(_ context.Context, id string) (*entity.Personnel, error) {
	var out *entity.Personnel
	err := r.with(func(st *state) error {
		if p, ok := st.personnel[id]; ok && !p.IsDeleted() {
			out = copyPersonnel(p)
		}
		return nil
	})
	return out, err
}

func (r *PersonnelRepo) GetForUpdate(ctx context.Context, id string) (*entity.Personnel, error) {
	return r.GetByID(ctx, id)
}

func (r *PersonnelRepo) Update(_ context.Context, personnel *entity.Personnel) error {
	return r.with(func(st *state) error {
		stored, ok := st.personnel[personnel.ID]
		if !ok || stored.Version != personnel.Version {
			return domain.NewConcurrencyConflict(entity.EntityPersonnel, personnel.ID, personnel.Version)
		}
		personnel.Version++
		st.personnel[personnel.ID] = copyPersonnel(personnel)
		return nil
	})
}
