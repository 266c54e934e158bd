package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tiendas-ops/internal/domain/entity"
	"github.com/jhoicas/Tiendas-ops/internal/domain/geo"
)

func TestDistance(t *testing.T) {
	a := entity.Coordinate{Latitude: 10, Longitude: 10}
	assert.Equal(t, 0.0, geo.Distance(a, a))
	assert.InDelta(t, 5.0, geo.Distance(a, entity.Coordinate{Latitude: 13, Longitude: 14}), 1e-9)
}

func TestFindNearby_IncluyeBordeYPreservaOrden(t *testing.T) {
	origin := entity.Coordinate{Latitude: 10, Longitude: 10}
	stores := []entity.Store{
		{ID: 3, Latitude: 40, Longitude: 10},   // distancia exacta 30 -> incluida
		{ID: 1, Latitude: 11, Longitude: 11},   // cerca
		{ID: 2, Latitude: 40.1, Longitude: 10}, // apenas fuera
		{ID: 4, Latitude: 10, Longitude: 10},   // mismo punto
	}

	got := geo.FindNearby(origin, stores, geo.DefaultRadius)

	ids := make([]int64, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{3, 1, 4}, ids)
}

func TestFindNearby_Idempotente(t *testing.T) {
	origin := entity.Coordinate{Latitude: 50, Longitude: 50}
	stores := []entity.Store{
		{ID: 1, Latitude: 55, Longitude: 55},
		{ID: 2, Latitude: 90, Longitude: 90},
		{ID: 3, Latitude: 30, Longitude: 60},
	}
	first := geo.FindNearby(origin, stores, geo.DefaultRadius)
	second := geo.FindNearby(origin, first, geo.DefaultRadius)
	assert.Equal(t, first, second)
}

func TestFindNearby_SinCoincidenciasDevuelveVacio(t *testing.T) {
	got := geo.FindNearby(entity.Coordinate{Latitude: 1, Longitude: 1},
		[]entity.Store{{ID: 9, Latitude: 99, Longitude: 99}}, geo.DefaultRadius)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.NotNil(t, geo.FindNearby(entity.Coordinate{}, nil, geo.DefaultRadius))
}
