package entity

// Coordinate punto en el plano (latitud, longitud) usado para la búsqueda de tiendas.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Store representa una tienda física. ManagerID es 0 si la tienda no tiene gerente asignado.
type Store struct {
	ID        int64
	Latitude  float64
	Longitude float64
	ManagerID int64
}

// Location devuelve la ubicación de la tienda.
func (s Store) Location() Coordinate {
	return Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

// ManagedBy indica si managerID es el gerente de la tienda.
func (s Store) ManagedBy(managerID int64) bool {
	return s.ManagerID != 0 && s.ManagerID == managerID
}
