package component

import "github.com/milk9111/tiledworld/common"

type Item struct {
	Name      string
	Usable    bool
	Stack     int // zero when the item does not stack
	Rendering Rendering
	Shape     common.Shape
	Offset    *common.V2
}

var ItemComponent = NewComponent[Item]("item")

type Inventory struct {
	Name  string
	Items []Item
}

var InventoryComponent = NewComponent[Inventory]("inventory")
