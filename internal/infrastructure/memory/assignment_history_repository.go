package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	"github.com/jhoicas/Personal-api/internal/domain/repository"
)

var _ repository.AssignmentHistoryRepository = (*AssignmentHistoryRepo)(nil)

// AssignmentHistoryRepo historial en memoria.
type AssignmentHistoryRepo struct{ base }

func (r *AssignmentHistoryRepo) Create(_ context.Context, history *entity.AssignmentHistory) error {
	return r.with(func(st *state) error {
		if history.ID == "" {
			history.ID = uuid.New().String()
		}
		st.history[history.ID] = copyHistory(history)
		return nil
	})
}

func (r *AssignmentHistoryRepo) GetByID(_ context.Context, id string) (*entity.AssignmentHistory, error) {
	var out *entity.AssignmentHistory
	err := r.with(func(st *state) error {
		if h, ok := st.history[id]; ok {
			out = copyHistory(h)
		}
		return nil
	})
	return out, err
}

func (r *AssignmentHistoryRepo) FindOpenByPersonnel(_ context.Context, personnelID string) (*entity.AssignmentHistory, error) {
	var out *entity.AssignmentHistory
	err := r.with(func(st *state) error {
		for _, h := range st.history {
			if h.PersonnelID == personnelID && h.IsOpen() && h.Status == entity.HistoryStatusActive {
				out = copyHistory(h)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *AssignmentHistoryRepo) Update(_ context.Context, history *entity.AssignmentHistory) error {
	return r.with(func(st *state) error {
		stored, ok := st.history[history.ID]
		if !ok || stored.Version != history.Version {
			return domain.NewConcurrencyConflict(entity.EntityAssignmentHistory, history.ID, history.Version)
		}
		history.Version++
		st.history[history.ID] = copyHistory(history)
		return nil
	})
}

func (r *AssignmentHistoryRepo) ListByPersonnel(_ context.Context, personnelID string) ([]*entity.AssignmentHistory, error) {
	var list []*entity.AssignmentHistory
	err := r.with(func(st *state) error {
		for _, h := range st.history {
			if h.PersonnelID == personnelID {
				list = append(list, copyHistory(h))
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartDate.Equal(list[j].StartDate) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].StartDate.Before(list[j].StartDate)
	})
	return list, err
}
