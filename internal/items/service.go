package items

import "context"

// Service contiene las reglas de negocio de items. No persiste nada:
// arma las respuestas a partir del item validado.
type Service struct{}

// NewService crea un service de items.
func NewService() *Service {
	return &Service{}
}

// Create arma la respuesta de creación: los campos del item más
// price_with_tax cuando el impuesto viene con un valor distinto de cero.
func (service *Service) Create(_ context.Context, item Item) map[string]any {
	response := item.asMap()
	if item.Tax != nil && *item.Tax != 0 {
		response["price_with_tax"] = item.Price + *item.Tax
	}
	return response
}

// Replace arma la respuesta de reemplazo: item_id más los campos del item.
// Nunca agrega price_with_tax; ese cálculo pertenece solo a la creación.
func (service *Service) Replace(_ context.Context, itemID int, item Item) map[string]any {
	response := item.asMap()
	response["item_id"] = itemID
	return response
}
