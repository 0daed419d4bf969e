package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/PabloGalante/uiba-agent/internal/adapters/http"
	"github.com/PabloGalante/uiba-agent/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/uiba-agent/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/uiba-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/uiba-agent/internal/app/briefing"
	"github.com/PabloGalante/uiba-agent/internal/config"
	"github.com/PabloGalante/uiba-agent/internal/domain"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	llmClient := buildLLMClient(ctx, cfg)
	store, closeStore := buildBriefStore(ctx, cfg)
	if closeStore != nil {
		defer closeStore()
	}

	newAgent := func() *briefing.Agent {
		return briefing.NewAgent(llmClient, store, cfg.ModelName)
	}

	handler := httpadapter.NewServer(newAgent, store)

	addr := ":" + cfg.Port
	log.Println("UIBA API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}

func buildLLMClient(ctx context.Context, cfg *config.Config) domain.GenerationClient {
	switch cfg.LLMBackend {
	case config.LLMOpenAI:
		log.Println("[LLM] Using OpenAI-compatible client:", cfg.APIBaseURL)
		return llm.NewOpenAIClient(cfg.APIBaseURL, cfg.APIKey)
	case config.LLMVertex:
		log.Println("[LLM] Using Vertex AI client")
		client, err := llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation)
		if err != nil {
			log.Fatalf("error initializing Vertex AI client: %v", err)
		}
		return client
	default:
		log.Println("[LLM] Using MOCK LLM client")
		return llm.NewMockLLM()
	}
}

func buildBriefStore(ctx context.Context, cfg *config.Config) (domain.BriefStore, func() error) {
	switch cfg.StorageBackend {
	case config.StorageFirestore:
		log.Printf("[STORE] Using Firestore brief store (project=%s)", cfg.GCPProjectID)
		store, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		return store, store.Close
	case config.StorageNone:
		log.Println("[STORE] No brief store configured")
		return nil, nil
	default:
		log.Println("[STORE] Using in-memory brief store")
		return memstore.NewBriefStore(), nil
	}
}
