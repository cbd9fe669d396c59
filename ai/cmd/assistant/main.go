package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/server"
	"google.golang.org/genai"
	"timekeeper.app/timekeeper/ai/assistant"
	"timekeeper.app/timekeeper/ai/utils"
	"timekeeper.app/timekeeper/attendance/app"
	"timekeeper.app/timekeeper/config"
)

var model = googlegenai.GoogleAIModelRef("gemini-2.5-flash", &genai.GenerateContentConfig{
	MaxOutputTokens: 1024,
	Temperature:     genai.Ptr[float32](0.0),
	TopP:            genai.Ptr[float32](0.4),
	ThinkingConfig: &genai.ThinkingConfig{
		ThinkingBudget: genai.Ptr[int32](0),
	},
})

func main() {
	prompt := flag.String("prompt", "", "ask a single question and exit")
	addr := flag.String("addr", "127.0.0.1:3400", "address to serve the assistant flow on")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	a, err := app.Open(ctx, cfg, nil, false)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{APIKey: apiKey}))

	tools := (&assistant.Tools{Statistics: a.Statistics, Location: cfg.Location}).Define(g)

	generate := func(ctx context.Context, input string, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
		return genkit.Generate(ctx, g,
			ai.WithModel(model),
			ai.WithSystem(assistant.SystemPrompt(time.Now().In(cfg.Location))),
			ai.WithTools(tools...),
			ai.WithStreaming(cb),
			ai.WithPrompt(input))
	}

	if *prompt != "" {
		resp, err := generate(ctx, *prompt, nil)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(resp.Text())
		utils.PrintUsage(resp)
		return
	}

	flow := genkit.DefineStreamingFlow(g, "attendanceAssistant", func(ctx context.Context, input string, cb ai.ModelStreamCallback) (string, error) {
		resp, err := generate(ctx, input, cb)
		if err != nil {
			return "", err
		}
		fmt.Printf("[INFO] assistant answered %q\n", input)
		return resp.Text(), nil
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /assistant", genkit.Handler(flow))
	log.Printf("Assistant available at: POST http://%s/assistant\n", *addr)
	log.Fatal(server.Start(ctx, *addr, mux))
}
