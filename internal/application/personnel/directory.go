// Package personnel expone el directorio de personal: referencia al puesto vigente y autorización de cumul.
package personnel

import (
	"context"

	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// Directory consultas y resolución de personal dentro de una transacción.
type Directory struct{}

// NewDirectory construye el directorio.
func NewDirectory() *Directory {
	return &Directory{}
}

// HasCurrentPosition verdadero si la referencia al puesto vigente está definida.
func (d *Directory) HasCurrentPosition(p *entity.Personnel) bool {
	return p.HasCurrentPosition()
}

// CanBeAssignedToPosition activo y (sin puesto o con autorización de cumul).
func (d *Directory) CanBeAssignedToPosition(p *entity.Personnel) bool {
	return p.CanBeAssignedToPosition()
}

// Resolve obtiene el personal (bloqueado para update si forUpdate), o NotFound.
func (d *Directory) Resolve(ctx context.Context, repos ports.Repositories, id string, forUpdate bool) (*entity.Personnel, error) {
	get := repos.Personnel.GetByID
	if forUpdate {
		get = repos.Personnel.GetForUpdate
	}
	p, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(entity.EntityPersonnel, id)
	}
	return p, nil
}
