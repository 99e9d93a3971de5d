package main

import (
	"fmt"
	"log"
	"net/http"

	_ "go.uber.org/automaxprocs"

	"github.com/go-chi/chi/v5"
	"github.com/hogyzen12/carrot-go/internal/adapter"
	"github.com/hogyzen12/carrot-go/internal/carrot"
	"github.com/hogyzen12/carrot-go/internal/config"
	"github.com/hogyzen12/carrot-go/internal/handler"
	"github.com/hogyzen12/carrot-go/internal/rpc"
	"github.com/hogyzen12/carrot-go/internal/storage"
)

type Server struct {
	Router *chi.Mux
}

func CreateServer(client *carrot.Client) *Server {
	return &Server{
		Router: handler.CreateRoutes(client),
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := config.InitEnv(); err != nil {
		log.Print(err)
		return
	}

	if config.RpcHttpUrl == "" {
		log.Fatal("RPC_HTTP_URL is required")
	}

	// Storage is optional; without it the service still serves balance and
	// vault queries but keeps no activity history.
	if config.RedisAddr != "" && config.MySqlDsn != "" {
		if err := adapter.InitRedisClient(config.RedisAddr, config.RedisPassword); err != nil {
			log.Fatalf("Failed to initialize Redis client: %v", err)
		}

		if err := adapter.InitMySQLClient(config.MySqlDsn, config.MySqlDbName); err != nil {
			log.Fatalf("Failed to initialize SQL client: %v", err)
		}

		mySqlClient, err := adapter.GetMySQLClient()
		if err != nil {
			log.Fatal(err)
		}

		redisClient, err := adapter.GetRedisClient()
		if err != nil {
			log.Fatal(err)
		}

		storage.Init(mySqlClient, redisClient)
	} else {
		log.Print("Redis/MySQL not configured, running without activity history")
	}

	log.Print("Initialized ENVIRONMENT successfully")

	var opts []rpc.Option
	if config.RpcWsUrl != "" {
		opts = append(opts, rpc.WithWsUrl(config.RpcWsUrl))
	}

	client := carrot.NewFromEndpoint(config.RpcHttpUrl, opts...)

	server := CreateServer(client)
	port := fmt.Sprintf(":%s", config.Port)
	fmt.Printf("server running on port%s \n", port)

	if err := http.ListenAndServe(port, server.Router); err != nil {
		log.Fatal(err)
	}
}
