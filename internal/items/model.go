package items

// Item es un item ya validado.
// Description y Tax son punteros porque el contrato distingue el valor
// en null del campo con valor; en las respuestas aparecen siempre, con
// null cuando faltan.
type Item struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Tax         *float64 `json:"tax"`
}

// ItemInput es el espejo crudo del body: todos los campos como punteros
// para distinguir campo ausente de campo presente. Los tags validate
// cubren la obligatoriedad; los tipos los chequea el decode campo a campo.
type ItemInput struct {
	Name        *string  `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required"`
	Tax         *float64 `json:"tax"`
}

// asMap expone los campos del item como mapa para armar respuestas que
// mezclan claves extra (item_id, price_with_tax) con el item.
func (item Item) asMap() map[string]any {
	return map[string]any{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"tax":         item.Tax,
	}
}
