package cart

import (
	"sort"

	validator "gopkg.in/go-playground/validator.v8"
)

var validate = validator.New(&validator.Config{TagName: "validate"})

// Options holds free-form item attributes (size, color...).
type Options map[string]string

func (o Options) clone() Options {
	if o == nil {
		return Options{}
	}
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// Item is a single cart line.
type Item struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Options  Options `json:"options"`
}

// Subtotal is price times quantity.
func (item Item) Subtotal() float64 {
	return item.Price * float64(item.Quantity)
}

// merge folds a repeated add into an existing line: quantities add up
// and the newer name, price and options win.
func (item Item) merge(with Item) Item {
	item.Quantity += with.Quantity
	item.Name = with.Name
	item.Price = with.Price
	item.Options = with.Options.clone()
	return item
}

func validateItem(item Item) error {
	err := validate.Struct(item)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &InvalidInput{Field: "item", Reason: err.Error()}
	}

	// Report a stable field when several fail.
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fe := errs[keys[0]]
	return &InvalidInput{Field: fe.Field, Reason: "failed " + fe.Tag + " check"}
}

func sortItems(list []Item) []Item {
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}
