package items

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Lelo88/items-api-golang/internal/httpx"
)

// Mensajes y códigos estables del contrato de validación. Los clientes
// enrutan por Type; Msg es solo para humanos.
const (
	msgFieldRequired = "field required"
	typeValueMissing = "value_error.missing"

	msgInvalidInteger = "value is not a valid integer"
	typeErrorInteger  = "type_error.integer"

	msgInvalidFloat = "value is not a valid float"
	typeErrorFloat  = "type_error.float"

	msgStrExpected = "str type expected"
	typeErrorStr   = "type_error.str"

	msgInvalidJSON = "invalid JSON body"
	typeJSONDecode = "value_error.jsondecode"

	msgInvalidDict = "value is not a valid dict"
	typeErrorDict  = "type_error.dict"
)

// validate se comparte a nivel paquete: cachea la metadata de los structs.
// Los nombres de campo en los errores salen del tag json.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// El orden público de los errores sigue la declaración de los campos.
var fieldOrder = map[string]int{"name": 0, "description": 1, "price": 2, "tax": 3}

// DecodeItem lee y valida el body de un item. Devuelve el item poblado o
// la lista completa de violaciones: el decode no corta en el primer error
// para que el cliente pueda corregir todo en una sola pasada.
func DecodeItem(body io.Reader) (Item, []httpx.FieldError) {
	var raw map[string]json.RawMessage

	decoder := json.NewDecoder(body)
	err := decoder.Decode(&raw)
	switch {
	case errors.Is(err, io.EOF):
		return Item{}, []httpx.FieldError{bodyMissing()}
	case err != nil:
		var typeError *json.UnmarshalTypeError
		if errors.As(err, &typeError) {
			return Item{}, []httpx.FieldError{{
				Loc:  []string{"body"},
				Msg:  msgInvalidDict,
				Type: typeErrorDict,
			}}
		}
		return Item{}, []httpx.FieldError{bodyInvalid()}
	case trailingData(decoder):
		// El body tiene que ser exactamente un valor JSON.
		return Item{}, []httpx.FieldError{bodyInvalid()}
	case raw == nil:
		// El body era el literal null.
		return Item{}, []httpx.FieldError{bodyMissing()}
	}

	var input ItemInput
	fieldErrors, typeFailed := decodeFields(raw, &input)

	if err := validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, validationError := range validationErrors {
				field := validationError.Field()
				// Un campo que ya falló por tipo no se reporta además
				// como faltante.
				if typeFailed[field] {
					continue
				}
				fieldErrors = append(fieldErrors, httpx.FieldError{
					Loc:  []string{"body", field},
					Msg:  msgFieldRequired,
					Type: typeValueMissing,
				})
			}
		}
	}

	if len(fieldErrors) > 0 {
		sort.SliceStable(fieldErrors, func(i, j int) bool {
			return fieldOrder[fieldErrors[i].Loc[1]] < fieldOrder[fieldErrors[j].Loc[1]]
		})
		return Item{}, fieldErrors
	}

	return Item{
		Name:        *input.Name,
		Description: input.Description,
		Price:       *input.Price,
		Tax:         input.Tax,
	}, nil
}

// decodeFields unmarshalea cada campo conocido por separado: un error de
// tipo en un campo no aborta la lectura de los demás. Null deja el puntero
// en nil y los campos desconocidos se ignoran.
func decodeFields(raw map[string]json.RawMessage, input *ItemInput) ([]httpx.FieldError, map[string]bool) {
	var fieldErrors []httpx.FieldError
	typeFailed := make(map[string]bool)

	fail := func(field, msg, errorType string) {
		typeFailed[field] = true
		fieldErrors = append(fieldErrors, httpx.FieldError{
			Loc:  []string{"body", field},
			Msg:  msg,
			Type: errorType,
		})
	}

	if value, ok := raw["name"]; ok {
		if err := json.Unmarshal(value, &input.Name); err != nil {
			fail("name", msgStrExpected, typeErrorStr)
		}
	}
	if value, ok := raw["description"]; ok {
		if err := json.Unmarshal(value, &input.Description); err != nil {
			fail("description", msgStrExpected, typeErrorStr)
		}
	}
	if value, ok := raw["price"]; ok {
		if err := json.Unmarshal(value, &input.Price); err != nil {
			fail("price", msgInvalidFloat, typeErrorFloat)
		}
	}
	if value, ok := raw["tax"]; ok {
		if err := json.Unmarshal(value, &input.Tax); err != nil {
			fail("tax", msgInvalidFloat, typeErrorFloat)
		}
	}

	return fieldErrors, typeFailed
}

// trailingData reporta si queda algo más que espacio en blanco después del
// primer valor JSON. Un segundo Decode devuelve io.EOF solo con el stream
// agotado.
func trailingData(decoder *json.Decoder) bool {
	return !errors.Is(decoder.Decode(new(json.RawMessage)), io.EOF)
}

func bodyMissing() httpx.FieldError {
	return httpx.FieldError{
		Loc:  []string{"body"},
		Msg:  msgFieldRequired,
		Type: typeValueMissing,
	}
}

func bodyInvalid() httpx.FieldError {
	return httpx.FieldError{
		Loc:  []string{"body"},
		Msg:  msgInvalidJSON,
		Type: typeJSONDecode,
	}
}
