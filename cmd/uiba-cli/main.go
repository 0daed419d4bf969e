package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PabloGalante/uiba-agent/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/uiba-agent/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/uiba-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/uiba-agent/internal/app/briefing"
	"github.com/PabloGalante/uiba-agent/internal/config"
	"github.com/PabloGalante/uiba-agent/internal/domain"
)

// Interactive terminal session against one briefing agent.
// Type 'exit' or 'quit' to end, '--generate_brief' to synthesize and
// store the current project brief.
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

	agent := briefing.NewAgent(llmClient, store, cfg.ModelName)

	fmt.Println("UIBA interactive session")
	fmt.Println("Type 'exit' or 'quit' to end the session.")
	fmt.Println("Type '--generate_brief' to generate the project brief.")
	fmt.Println(strings.Repeat("-", 30))

	greeting := agent.StartInteraction(ctx, cfg.Greeting)
	fmt.Println("Agent:", greeting.Text)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("User: ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())

		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			fmt.Println("Exiting session.")
			break
		}
		if text == "--generate_brief" {
			printAndStoreBrief(ctx, agent)
			continue
		}

		reply := agent.HandleTurn(ctx, domain.Turn{
			Text:      text,
			Timestamp: time.Now().UTC(),
		})
		fmt.Println("Agent:", reply.Text)
		if reply.Type == domain.MessageError {
			fmt.Println("(the agent reported a problem with that turn)")
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("reading input: %v", err)
	}
}

func printAndStoreBrief(ctx context.Context, agent *briefing.Agent) {
	brief := agent.SynthesizeBrief()

	out, err := json.MarshalIndent(brief, "", "  ")
	if err != nil {
		log.Printf("error rendering brief: %v", err)
		return
	}

	fmt.Println("\n--- Generated Project Brief ---")
	fmt.Println(string(out))
	fmt.Println("--- End of Brief ---")

	if agent.Present(ctx, brief) {
		fmt.Println("Project brief stored successfully.")
	} else {
		fmt.Println("Project brief was not stored.")
	}
}

func buildLLMClient(ctx context.Context, cfg *config.Config) domain.GenerationClient {
	switch cfg.LLMBackend {
	case config.LLMOpenAI:
		return llm.NewOpenAIClient(cfg.APIBaseURL, cfg.APIKey)
	case config.LLMVertex:
		client, err := llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation)
		if err != nil {
			log.Fatalf("error initializing Vertex AI client: %v", err)
		}
		return client
	default:
		return llm.NewMockLLM()
	}
}

func buildBriefStore(ctx context.Context, cfg *config.Config) (domain.BriefStore, func() error) {
	switch cfg.StorageBackend {
	case config.StorageFirestore:
		store, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		return store, store.Close
	case config.StorageNone:
		return nil, nil
	default:
		return memstore.NewBriefStore(), nil
	}
}
