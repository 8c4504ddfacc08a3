// Package main runs the sampling planner HTTP service.
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	planner "sampling-planner"
)

const (
	flagAddr          = "addr"
	flagObstacles     = "obstacles"
	flagDebug         = "debug"
	flagMaxSamples    = "max-samples"
	flagMaxIterations = "max-iterations"
	flagWriteTimeout  = "write-timeout"
)

func main() {
	app := &cli.App{
		Name:  "plannerd",
		Usage: "serve PRM and RRT path planning over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagAddr,
				Value:   ":8080",
				Usage:   "listen address",
				EnvVars: []string{"PLANNERD_ADDR"},
			},
			&cli.StringFlag{
				Name:  flagObstacles,
				Usage: "load default obstacles from files matching `GLOB` (.json records or .geojson)",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
			&cli.IntFlag{
				Name:  flagMaxSamples,
				Value: defaultLimits().MaxSamples,
				Usage: "largest PRM numSamples a request may ask for",
			},
			&cli.IntFlag{
				Name:  flagMaxIterations,
				Value: defaultLimits().MaxIterations,
				Usage: "largest RRT maxIterations a request may ask for",
			},
			&cli.DurationFlag{
				Name:  flagWriteTimeout,
				Value: time.Minute,
				Usage: "maximum time to plan and write one response",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	var zl *zap.Logger
	var err error
	if c.Bool(flagDebug) {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	logger := zl.Sugar()

	logger.Info("🚀 Sampling Planner Server (PRM / RRT)")

	var obstacles []planner.Obstacle
	if pattern := c.String(flagObstacles); pattern != "" {
		obstacles, err = planner.LoadObstacleFiles(pattern)
		if err != nil {
			// partial loads are still served
			logger.Warnf("⚠️  Some obstacle files failed to load: %v", err)
		}
		logger.Infof("✅ Loaded %d default obstacles from %s", len(obstacles), pattern)
	} else {
		logger.Info("ℹ️  No default obstacles configured; requests must carry their own")
	}

	srv := newServer(logger, obstacles, limits{
		MaxSamples:    c.Int(flagMaxSamples),
		MaxIterations: c.Int(flagMaxIterations),
	})

	addr := c.String(flagAddr)
	logger.Infof("Server starting on %s", addr)
	logger.Info("Endpoints:")
	logger.Info("  POST /plan    - Plan a path (algorithm: prm, rrt, rrt3d)")
	logger.Info("  GET  /health  - Check server status")

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      c.Duration(flagWriteTimeout),
		IdleTimeout:       2 * time.Minute,
	}
	return httpServer.ListenAndServe()
}
