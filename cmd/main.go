package main

import (
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/config"
	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
