package router

import (
	"github.com/gin-gonic/gin"

	"github.com/seiflotfy/huff/internal/handler"
)

type Dependencies struct {
	CodecHandler *handler.CodecHandler
}

func Register(r *gin.Engine, d Dependencies) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/compress", d.CodecHandler.Compress)
		v1.POST("/decompress", d.CodecHandler.Decompress)
		v1.POST("/codes", d.CodecHandler.Codes)
	}
}
