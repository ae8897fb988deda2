package auth

// Actor es la identidad autenticada que ejecuta un caso de uso. Se
// resuelve en el middleware a partir del token y se pasa explícita en
// cada llamada: la lógica de dominio no consulta estado ambiente.
type Actor struct {
	ID   int64
	Role string
}

// HasRole indica si el actor tiene exactamente ese rol.
func (a Actor) HasRole(role string) bool { return a.Role == role }

// InAnyRole indica si el rol del actor está entre los permitidos.
func (a Actor) InAnyRole(roles ...string) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
