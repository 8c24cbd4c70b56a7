package cart

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tryanzu/cart/modules/cart"
	"github.com/tryanzu/cart/modules/helpers"
)

// Add puts an item in the cart, merging it with an existing line of the same id.
func (api API) Add(c *gin.Context) {
	var form CartAddForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Malformed request."})
		return
	}

	options := cart.Options{}
	for k, v := range form.Options {
		if key := helpers.StrSlug(k); key != "" {
			options[key] = helpers.CleanText(v)
		}
	}

	container, err := api.getCart(c)
	if err != nil {
		api.fail(c, err)
		return
	}

	err = container.Add(c.Request.Context(), cart.Item{
		ID:       strings.TrimSpace(form.ID),
		Name:     helpers.CleanText(form.Name),
		Price:    form.Price,
		Quantity: form.Quantity,
		Options:  options,
	})
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(200, gin.H{"status": "okay"})
}
