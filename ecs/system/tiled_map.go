package system

import (
	"github.com/milk9111/tiledworld/assets"
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/component"
	"github.com/milk9111/tiledworld/ecs/entity"
	"github.com/milk9111/tiledworld/logger"
	"github.com/milk9111/tiledworld/tiled"
	"github.com/sirupsen/logrus"
)

// TiledMapSystem serves LoadMap requests: it starts the load, waits for it
// without blocking the tick, inserts the map and destroys the request.
type TiledMapSystem struct {
	loads *assets.MapLoads
	log   *logrus.Entry
}

func NewTiledMapSystem(loads *assets.MapLoads) *TiledMapSystem {
	return &TiledMapSystem{loads: loads, log: logger.For("tiled")}
}

func (s *TiledMapSystem) Loads() *assets.MapLoads {
	return s.loads
}

// Update panics with the *entity.ConfigError when a loaded map misuses the
// object vocabulary.
func (s *TiledMapSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.LoadMapComponent.Kind()) {
		req, ok := ecs.Get(w, e, component.LoadMapComponent.Kind())
		if !ok {
			continue
		}
		file := req.File

		settled := false
		err := s.loads.WhenLoaded(file, func(m *tiled.Map) {
			settled = true
			if err := entity.InsertMap(w, m); err != nil {
				panic(err)
			}
			s.log.WithField("path", file).Debugf("inserted %s", m)
		})
		if err != nil {
			settled = true
			s.log.WithField("path", file).WithError(err).Warn("map load failed")
		}
		if settled {
			ecs.DestroyEntity(w, e)
		}
	}
}

// RequestMap creates a LoadMap request for file.
func RequestMap(w *ecs.World, file string) ecs.Entity {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LoadMapComponent.Kind(), component.LoadMap{File: file}); err != nil {
		panic("tiled map system: add load request: " + err.Error())
	}
	return e
}
