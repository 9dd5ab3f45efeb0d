package ports

import "context"

// IdentityProvider entrega la identidad del usuario que actúa, para atribución en la bitácora.
// La provee la capa de transporte (JWT); el núcleo no la administra.
type IdentityProvider interface {
	CurrentActor(ctx context.Context) (string, error)
}

// StaticIdentity identidad fija (procesos internos, semillas y pruebas).
type StaticIdentity string

// CurrentActor implementa IdentityProvider.
func (s StaticIdentity) CurrentActor(context.Context) (string, error) {
	return string(s), nil
}
