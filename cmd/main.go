package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aonescu/kubewatch"
	"github.com/aonescu/kubewatch/cmd/server"
	"github.com/aonescu/kubewatch/internal/db"
	"github.com/aonescu/kubewatch/internal/formatting"
	"github.com/aonescu/kubewatch/internal/state"
	"github.com/aonescu/kubewatch/internal/types"
)

func main() {
	fmt.Println("kubewatch - Kubernetes watch event stream")

	// Get configuration from environment
	serverAddr := os.Getenv("KUBEWATCH_SERVER")
	resource := os.Getenv("KUBEWATCH_RESOURCE")
	if resource == "" {
		resource = "api/v1/pods"
	}

	apiAddr := os.Getenv("API_ADDRESS")
	if apiAddr == "" {
		apiAddr = ":8080"
	}

	// Initialize storage
	var store state.Store
	dbConnStr := os.Getenv("DATABASE_URL")
	if dbConnStr == "" {
		log.Println("DATABASE_URL not set, using in-memory storage")
		store = state.NewMemoryStore()
	} else {
		pgStore, err := db.NewPostgresStore(dbConnStr)
		if err != nil {
			log.Printf("Failed to connect to PostgreSQL: %v", err)
			log.Println("Falling back to in-memory storage...")
			store = state.NewMemoryStore()
		} else {
			log.Println("Connected to PostgreSQL")
			store = pgStore
			defer pgStore.Close()
		}
	}

	// Connect to the cluster: explicit address wins, kubeconfig otherwise
	var cluster *kubewatch.Cluster
	var err error
	if serverAddr != "" {
		cluster, err = kubewatch.NewCluster(serverAddr)
	} else {
		log.Println("KUBEWATCH_SERVER not set, loading kubeconfig")
		cluster, err = kubewatch.NewClusterFromKubeconfig(os.Getenv("KUBECONFIG"))
	}
	if err != nil {
		log.Fatalf("Failed to connect to cluster: %v", err)
	}

	// Start API server over the recorded events
	apiServer := server.NewAPIServer(store)
	go func() {
		log.Printf("API server listening on %s", apiAddr)
		if err := apiServer.Start(apiAddr); err != nil {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	log.Printf("Watching %s", resource)
	if err := watchAndRecord(context.Background(), cluster, resource, store); err != nil {
		log.Fatalf("Watch failed: %v", err)
	}
	log.Println("Watch stream closed by server")
}

func watchAndRecord(ctx context.Context, cluster *kubewatch.Cluster, resource string, store state.Store) error {
	stream, err := kubewatch.Events[json.RawMessage](ctx, cluster, resource)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		event, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var decodeErr *kubewatch.DecodeError
		if errors.As(err, &decodeErr) {
			log.Printf("Skipping malformed frame: %v", err)
			continue
		}
		if err != nil {
			return err
		}

		rec := types.FromObject(resource, string(event.Type), event.Object)
		if err := store.Record(rec); err != nil {
			log.Printf("Failed to record event: %v", err)
		}
		log.Println(formatting.FormatRecord(rec))
	}
}
