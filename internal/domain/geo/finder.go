// Package geo filtra tiendas por distancia euclidiana a un punto de origen.
package geo

import (
	"math"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
)

// DefaultRadius radio de búsqueda por defecto (misma unidad que las coordenadas).
const DefaultRadius = 30.0

// Distance distancia euclidiana entre dos puntos.
func Distance(a, b entity.Coordinate) float64 {
	dLat := a.Latitude - b.Latitude
	dLong := a.Longitude - b.Longitude
	return math.Sqrt(dLat*dLat + dLong*dLong)
}

// FindNearby devuelve las tiendas a distancia <= radius del origen, en el mismo orden
// de entrada. Nunca devuelve nil: sin coincidencias el resultado es un slice vacío.
func FindNearby(origin entity.Coordinate, stores []entity.Store, radius float64) []entity.Store {
	nearby := make([]entity.Store, 0, len(stores))
	for _, s := range stores {
		if Distance(origin, s.Location()) <= radius {
			nearby = append(nearby, s)
		}
	}
	return nearby
}
