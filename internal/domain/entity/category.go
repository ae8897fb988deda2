package entity

// Category agrupa items de checklist dentro de una auditoría.
// El nombre es único dentro de la auditoría.
type Category struct {
	ID    int64 // 0 hasta persistir
	Name  string
	Items []*Item
}

// AddItem agrega un item a la categoría (orden de inserción).
func (c *Category) AddItem(it *Item) {
	c.Items = append(c.Items, it)
}
