package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListEvents - GET /events?category=&q=
func (h *Handlers) ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Events.List(c.Query("category"), c.Query("q")))
}

// GetEvent - GET /events/:id
func (h *Handlers) GetEvent(c *gin.Context) {
	event, err := h.services.Events.Get(c.Param("id"))
	if err != nil {
		fail(c, err, "Failed to get event")
		return
	}
	c.JSON(http.StatusOK, event)
}

// ListCategories - GET /categories
func (h *Handlers) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Events.Categories())
}
