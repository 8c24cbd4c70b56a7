package cart

import (
	"context"

	"github.com/gin-gonic/gin"
)

func (api API) Increase(c *gin.Context) {
	api.changeQuantity(c, func(ctx context.Context, s quantityChanger, id string, n int) error {
		return s.Increase(ctx, id, n)
	})
}

func (api API) Decrease(c *gin.Context) {
	api.changeQuantity(c, func(ctx context.Context, s quantityChanger, id string, n int) error {
		return s.Decrease(ctx, id, n)
	})
}

type quantityChanger interface {
	Increase(ctx context.Context, id string, quantity int) error
	Decrease(ctx context.Context, id string, quantity int) error
}

// changeQuantity reads an optional {"quantity": n} body, zero meaning one.
func (api API) changeQuantity(c *gin.Context, change func(context.Context, quantityChanger, string, int) error) {
	var form QuantityForm
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": "Malformed request."})
			return
		}
	}

	container, err := api.getCart(c)
	if err != nil {
		api.fail(c, err)
		return
	}

	if err := change(c.Request.Context(), container, c.Param("id"), form.Quantity); err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(200, gin.H{"status": "okay"})
}
