// Package roles concentra la clasificación de roles en un único tipo
// enumerado y una única función de chequeo, en lugar de predicados
// booleanos repartidos por el código.
package roles

type Role string

const (
	Administrator Role = "administrador"
	Receptionist  Role = "recepcionista"
	Stylist       Role = "estilista"
	None          Role = ""
)

// Classify resuelve el rol efectivo de un actor. Un superuser siempre es
// administrador, tenga perfil o no.
func Classify(superuser bool, profileRole string) Role {
	if superuser {
		return Administrator
	}
	switch Role(profileRole) {
	case Administrator, Receptionist, Stylist:
		return Role(profileRole)
	}
	return None
}

// Allowed reporta si role está dentro del conjunto requerido.
// El administrador pasa cualquier chequeo.
func Allowed(role Role, required ...Role) bool {
	if role == Administrator {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}
