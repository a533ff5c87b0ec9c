// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/ThinkInAIXYZ/go-mcp/server"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"nutrition-advisor/internal/mapping"
	"nutrition-advisor/internal/storage"
)

type Config struct {
	Host           string
	Port           int
	DBPath         string
	FoodAPIURL     string
	FoodAPIKey     string
	ActivityFactor float64
}

type AdvisorServer struct {
	server     *server.Server
	httpServer *http.Server
	storage    *storage.SQLiteStorage
	extraction *ExtractionClient
	matcher    *mapping.Matcher
	config     *Config
}

func NewAdvisorServer(cfg *Config) (*AdvisorServer, error) {
	stor, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	advisor := &AdvisorServer{
		storage:    stor,
		extraction: NewExtractionClient(),
		matcher:    mapping.NewMatcher(cfg.FoodAPIURL, cfg.FoodAPIKey, stor),
		config:     cfg,
	}

	// Create MCP server (without transport, we handle HTTP manually)
	mcpServer, err := server.NewServer(
		nil,
		server.WithServerInfo(protocol.Implementation{
			Name:    "nutrition-advisor",
			Version: "1.0.0",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}
	advisor.server = mcpServer

	if err := advisor.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/mcp", advisor.handleMCP).Methods("POST", "OPTIONS")
	advisor.registerRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"*"},
	})

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	advisor.httpServer = &http.Server{
		Addr:    addr,
		Handler: c.Handler(loggingMiddleware(r)),
	}

	return advisor, nil
}

func (s *AdvisorServer) handleMCP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	var result *protocol.CallToolResult
	var err error

	switch request.Name {
	case "estimate_calories":
		result, err = s.handleEstimateCalories(&request)
	case "compute_daily_limits":
		result, err = s.handleComputeDailyLimits(&request)
	case "log_meal":
		result, err = s.handleLogMeal(&request)
	case "get_consumption":
		result, err = s.handleGetConsumption(&request)
	case "evaluate_recipe":
		result, err = s.handleEvaluateRecipe(&request)
	case "extract_ingredients":
		result, err = s.handleExtractIngredients(r.Context(), &request)
	default:
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (s *AdvisorServer) Start(ctx context.Context) error {
	log.Printf("Starting nutrition advisor server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *AdvisorServer) Stop() error {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(context.Background())
	}
	return nil
}

func (s *AdvisorServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
