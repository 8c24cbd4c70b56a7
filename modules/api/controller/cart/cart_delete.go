package cart

import (
	"github.com/gin-gonic/gin"
)

// Delete removes a line regardless of its quantity.
func (api API) Delete(c *gin.Context) {
	container, err := api.getCart(c)
	if err != nil {
		api.fail(c, err)
		return
	}

	if err := container.Remove(c.Request.Context(), c.Param("id")); err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(200, gin.H{"status": "okay"})
}

// Clear empties the cart.
func (api API) Clear(c *gin.Context) {
	container, err := api.getCart(c)
	if err != nil {
		api.fail(c, err)
		return
	}

	if err := container.Clear(c.Request.Context()); err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(200, gin.H{"status": "okay"})
}
