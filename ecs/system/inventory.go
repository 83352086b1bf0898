package system

import (
	"sort"

	"github.com/milk9111/tiledworld/common"
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/component"
	"github.com/milk9111/tiledworld/ecs/entity"
	"github.com/milk9111/tiledworld/ecs/spatial"
	"github.com/milk9111/tiledworld/logger"
	"github.com/sirupsen/logrus"
)

// ShapeQuerier is the read-only slice of the spatial index the inventory
// system needs.
type ShapeQuerier interface {
	QueryIntersectingShapes(w *ecs.World, e ecs.Entity) []spatial.Hit
}

type inventoryClaim struct {
	holder ecs.Entity
	name   string
}

type unclaimedInventory struct {
	entity    ecs.Entity
	inventory component.Inventory
}

// InventorySystem turns raw "inventory" and "item" map objects into
// inventories and hands each inventory to the entity whose inventory_name
// property names it. Claims and inventories wait across ticks until their
// counterpart appears.
type InventorySystem struct {
	shapes    ShapeQuerier
	claims    []inventoryClaim
	unclaimed map[string]unclaimedInventory
	log       *logrus.Entry
}

func NewInventorySystem(shapes ShapeQuerier) *InventorySystem {
	return &InventorySystem{
		shapes:    shapes,
		unclaimed: make(map[string]unclaimedInventory),
		log:       logger.For("inventory"),
	}
}

// Update panics with a *entity.ConfigError for an inventory without a name.
func (s *InventorySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	created, err := s.createInventories(w)
	if err != nil {
		panic(err)
	}
	s.fillInventories(w, created)
	for name, inv := range created {
		s.unclaimed[name] = inv
	}
	s.claims = append(s.claims, s.findClaims(w)...)
	s.resolveClaims(w)
}

// createInventories claims raw inventory and item objects. Items stay on the
// map, now carrying an Item, until an inventory absorbs them.
func (s *InventorySystem) createInventories(w *ecs.World) (map[string]unclaimedInventory, error) {
	invs := make(map[string]unclaimedInventory)
	for _, e := range w.Query(component.RawObjectComponent.Kind(), component.ShapeComponent.Kind()) {
		if ecs.Has(w, e, component.InventoryComponent.Kind()) {
			continue
		}
		raw, _ := ecs.Get(w, e, component.RawObjectComponent.Kind())
		obj := raw.Object

		switch obj.TypeName() {
		case "inventory":
			if obj.Name == "" {
				return nil, &entity.ConfigError{ObjectID: obj.ID, Msg: "inventory must have a name"}
			}
			invs[obj.Name] = unclaimedInventory{entity: e, inventory: component.Inventory{Name: obj.Name}}
		case "item":
			rendering, ok := ecs.Get(w, e, component.RenderingComponent.Kind())
			if !ok {
				return nil, &entity.ConfigError{ObjectID: obj.ID, ObjectName: obj.Name, Msg: "item has no rendering"}
			}
			item := itemFromObject(w, e, raw, *rendering)
			if err := ecs.Add(w, e, component.ItemComponent.Kind(), item); err != nil {
				panic("inventory system: add item: " + err.Error())
			}
		default:
			continue
		}
		ecs.Remove(w, e, component.RawObjectComponent.Kind())
	}
	return invs, nil
}

func itemFromObject(w *ecs.World, e ecs.Entity, raw *component.RawObject, rendering component.Rendering) component.Item {
	props := raw.Object.JSONProperties()
	item := component.Item{
		Name:      raw.Object.Name,
		Rendering: rendering,
		Shape:     common.BoxWithSize(0, 0),
	}
	if usable, ok := props["usable"].(bool); ok {
		item.Usable = usable
	}
	if stack, ok := entity.UnsignedProperty(props["stack"]); ok {
		item.Stack = int(stack)
	}
	if shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind()); ok {
		item.Shape = *shape
	}
	if offset, ok := ecs.Get(w, e, component.OriginOffsetComponent.Kind()); ok {
		v := offset.V
		item.Offset = &v
	}
	return item
}

// fillInventories moves every item overlapping a new inventory into it and
// removes the item from the map.
func (s *InventorySystem) fillInventories(w *ecs.World, invs map[string]unclaimedInventory) {
	names := make([]string, 0, len(invs))
	for name := range invs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		inv := invs[name]
		for _, hit := range s.shapes.QueryIntersectingShapes(w, inv.entity) {
			item, ok := ecs.Get(w, hit.Entity, component.ItemComponent.Kind())
			if !ok {
				continue
			}
			inv.inventory.Items = append(inv.inventory.Items, *item)
			ecs.DestroyEntity(w, hit.Entity)
		}
		invs[name] = inv
	}
}

// findClaims consumes inventory_name from leftover properties.
func (s *InventorySystem) findClaims(w *ecs.World) []inventoryClaim {
	var claims []inventoryClaim
	for _, e := range w.Query(component.PropertiesComponent.Kind()) {
		if ecs.Has(w, e, component.InventoryComponent.Kind()) {
			continue
		}
		props, _ := ecs.Get(w, e, component.PropertiesComponent.Kind())
		name, ok := props.Values["inventory_name"].(string)
		if !ok {
			continue
		}
		delete(props.Values, "inventory_name")
		ecs.MarkModified(w, e, component.PropertiesComponent.Kind())
		claims = append(claims, inventoryClaim{holder: e, name: name})
	}
	return claims
}

func (s *InventorySystem) resolveClaims(w *ecs.World) {
	pending := s.claims[:0]
	for _, claim := range s.claims {
		inv, ok := s.unclaimed[claim.name]
		if !ok {
			pending = append(pending, claim)
			continue
		}
		if !ecs.IsAlive(w, claim.holder) {
			s.log.WithField("inventory", claim.name).Warn("dropping claim of a destroyed holder")
			continue
		}
		delete(s.unclaimed, claim.name)
		s.log.WithFields(logrus.Fields{"inventory": claim.name, "items": len(inv.inventory.Items)}).Trace("resolved inventory")
		ecs.DestroyEntity(w, inv.entity)
		if err := ecs.Add(w, claim.holder, component.InventoryComponent.Kind(), inv.inventory); err != nil {
			panic("inventory system: give inventory: " + err.Error())
		}
	}
	s.claims = pending
}

// Pending reports claims and inventories still waiting for a counterpart.
func (s *InventorySystem) Pending() (claims, inventories int) {
	return len(s.claims), len(s.unclaimed)
}
