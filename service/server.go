package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/Semantics3/go-amazon-media/service/controller"
	"github.com/Semantics3/go-amazon-media/types"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

// NewRouter registers the amazon lookup routes
func NewRouter(appC *types.Config, lookup controller.Lookup, getter controller.ItemGetter) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${remote_ip} | ${method} | ${uri} | ${status} | ${latency_human}\n",
	}))
	router.Use(middleware.Recover())

	router.GET("/amazon/locales", controller.GetLocales(appC))
	router.GET("/amazon/items", controller.LookupItems(appC, lookup))
	router.GET("/amazon/items/:asin", controller.GetItem(appC, lookup, getter))
	router.POST("/amazon/filter", controller.FilterText(appC, lookup))

	router.GET("/health", func(c echo.Context) (err error) {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}

// StartWebService serves lookups until an interrupt arrives
func StartWebService(appC *types.Config, lookup controller.Lookup, getter controller.ItemGetter) {
	router := NewRouter(appC, lookup, getter)

	// Start server
	go func() {
		if err := router.Start(fmt.Sprintf(":%d", appC.ConfigData.Port)); err != nil {
			router.Logger.Info("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(ctx); err != nil {
		router.Logger.Fatal(err)
	}
}
