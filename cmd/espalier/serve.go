package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/logging"
	httpAdapter "github.com/aretw0/espalier/pkg/adapters/http"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves the conversation engine as a JSON API. Sessions live in memory by default, or in Redis with --redis for multi-replica deployments.`,
	Run: func(cmd *cobra.Command, args []string) {
		treePath, _ := cmd.Flags().GetString("tree")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")

		logger := logging.New(slog.LevelInfo)

		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		engine, err := espalier.New(treePath, espalier.WithLifecycleHooks(metrics.Hooks()), espalier.WithLogger(logger))
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		var store ports.StateStore = memory.NewStore()
		managerOpts := []session.Option{session.WithLogger(logger)}
		if redisAddr != "" {
			client := backend.NewClient(&backend.Options{Addr: redisAddr})
			store = redisAdapter.NewFromClient(client)
			managerOpts = append(managerOpts, session.WithLocker(redisAdapter.NewLocker(client, "espalier:")))
		}
		manager := session.NewManager(store, managerOpts...)

		server := httpAdapter.NewServer(engine.Runtime(), manager, httpAdapter.WithLogger(logger))

		r := chi.NewRouter()
		r.Handle("/metrics", promhttp.Handler())
		r.Mount("/", server.Handler())

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: r,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting espalier server on %s\n", srv.Addr)
			fmt.Printf("Serving tree: %s\n", treePath)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Espalier server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session storage (host:port)")
}
