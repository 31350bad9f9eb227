// Command huffd serves the huff codec over HTTP.
package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/seiflotfy/huff/internal/config"
	"github.com/seiflotfy/huff/internal/handler"
	"github.com/seiflotfy/huff/internal/router"
	"github.com/seiflotfy/huff/internal/service"
	"github.com/seiflotfy/huff/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	logg := logger.New()

	codecSvc, err := service.NewCodecService(cfg.CacheSize, logg, cfg.DebugLevel)
	if err != nil {
		log.Fatalf("cannot init codec service: %s", err)
	}
	codecH := handler.NewCodecHandler(codecSvc, cfg.MaxBody)

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	router.Register(r, router.Dependencies{
		CodecHandler: codecH,
	})

	logg.Infof("starting server at %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
