package cart

import (
	"github.com/gin-gonic/gin"
)

func (api API) Get(c *gin.Context) {
	container, err := api.getCart(c)
	if err != nil {
		api.fail(c, err)
		return
	}

	items, err := container.All(c.Request.Context())
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(200, items)
}

// Summary answers with the items, their count and total in one read.
func (api API) Summary(c *gin.Context) {
	container, err := api.getCart(c)
	if err != nil {
		api.fail(c, err)
		return
	}

	summary, err := container.Summary(c.Request.Context())
	if err != nil {
		api.fail(c, err)
		return
	}

	c.JSON(200, summary)
}
