package http

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine with the orders routes registered.
// Middleware must be passed here so it runs ahead of the route handlers;
// gin ignores engine-level middleware added after registration.
func NewRouter(api OrdersAPI, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	router.POST("/orders", api.CreateOrder)
	return router
}
