package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campushub/timetabler/internal/config"
	"github.com/campushub/timetabler/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml/toml/json)")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	srv := &server{cfg: cfg, log: log}
	r.GET("/schedule", srv.handleListSchedules)
	r.GET("/schedule/:id", srv.handleGetSchedule)
	r.POST("/schedule", srv.handlePostSchedule)
	r.POST("/solve", srv.handleSolve)

	log.Info("listening", zap.String("addr", *addr))
	if err := r.Run(*addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
