package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spacesedan/emotionmcp/config"
	"github.com/spacesedan/emotionmcp/internal/clients"
	"github.com/spacesedan/emotionmcp/internal/logging"
	"github.com/spacesedan/emotionmcp/internal/tools"
)

var rule = strings.Repeat("=", 80)

type example struct {
	title string
	run   func(ctx context.Context, c *clients.MCPClient) error
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.LoadClient()
	if err != nil {
		slog.Error("[Client] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("[Client] Demo failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.ClientConfig) error {
	ctx := context.Background()
	slog.Info("[Client] Connecting",
		slog.String("env", cfg.AppEnv),
		slog.String("server", cfg.ServerURL))

	c, err := clients.NewMCPClient(ctx, cfg.ServerURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Warn("[Client] Failed to close MCP client", slog.String("error", err.Error()))
		}
	}()

	examples := []example{
		{"EXAMPLE 1: Basic sentiment analysis", basicAnalysis},
		{"EXAMPLE 2: Detailed analysis (all 28 emotions)", detailedAnalysis},
		{"EXAMPLE 3: Sentiment comparison", comparison},
		{"EXAMPLE 4: Product review analysis", reviewAnalysis},
		{"EXAMPLE 5: Analysis with OpenAI synthesis", synthesis(cfg)},
	}

	fmt.Println("\nSENTIMENT ANALYSIS WITH GoEmotions (28 emotions)")
	for _, ex := range examples {
		fmt.Printf("\n%s\n%s\n%s\n\n", rule, ex.title, rule)
		if err := ex.run(ctx, c); err != nil {
			return fmt.Errorf("%s: %w", ex.title, err)
		}
	}

	fmt.Printf("\n%s\nAll examples finished.\n%s\n", rule, rule)
	return nil
}

func basicAnalysis(ctx context.Context, c *clients.MCPClient) error {
	out, err := c.CallTool(ctx, tools.ToolAnalyzeSentiment, map[string]any{
		"text":  "Estou muito feliz e animado com essa nova oportunidade! Mal posso esperar para começar!",
		"top_k": 5,
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func detailedAnalysis(ctx context.Context, c *clients.MCPClient) error {
	out, err := c.CallTool(ctx, tools.ToolAnalyzeSentimentDetailed, map[string]any{
		"text": "Estou preocupado com o futuro, mas também esperançoso de que tudo vai dar certo.",
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func comparison(ctx context.Context, c *clients.MCPClient) error {
	out, err := c.CallTool(ctx, tools.ToolCompareSentiments, map[string]any{
		"texts": []string{
			"Que dia maravilhoso! Tudo está perfeito!",
			"Estou muito frustrado e irritado com essa situação.",
			"Não sei o que pensar sobre isso, estou confuso.",
			"Obrigado por tudo! Você é incrível!",
		},
	})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func reviewAnalysis(ctx context.Context, c *clients.MCPClient) error {
	review := `
    Comprei este produto há uma semana e estou muito decepcionado.
    A qualidade é péssima e não funciona como prometido.
    Me sinto enganado e frustrado. Não recomendo!
    `
	out, err := c.CallTool(ctx, tools.ToolAnalyzeSentimentDetailed, map[string]any{"text": review})
	if err != nil {
		return err
	}

	fmt.Println("Review analyzed:")
	fmt.Println(review)
	fmt.Println("\nEmotion analysis:")
	fmt.Println(out)

	polarity, err := c.CallTool(ctx, tools.ToolAnalyzePolarity, map[string]any{"text": review})
	if err != nil {
		return err
	}
	fmt.Println("\nPolarity:")
	fmt.Println(polarity)
	return nil
}

func synthesis(cfg *config.ClientConfig) func(context.Context, *clients.MCPClient) error {
	return func(ctx context.Context, c *clients.MCPClient) error {
		synth, err := clients.NewSynthesizer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if errors.Is(err, clients.ErrMissingAPIKey) {
			slog.Warn("[Client] OPENAI_API_KEY not set, skipping OpenAI example")
			return nil
		}
		if err != nil {
			return err
		}

		text := `
    Recebi a notícia de que fui aprovado no emprego dos sonhos!
    Estou nas nuvens, mas também um pouco nervoso com os novos desafios.
    `
		analysisJSON, err := c.CallTool(ctx, tools.ToolAnalyzeSentiment, map[string]any{
			"text":  text,
			"top_k": 5,
		})
		if err != nil {
			return err
		}
		fmt.Println("Sentiment analysis:")
		fmt.Println(analysisJSON)

		commentary, err := synth.Synthesize(ctx, text, analysisJSON)
		if err != nil {
			return err
		}
		fmt.Printf("\nSynthesis and guidance (OpenAI):\n%s\n%s\n", strings.Repeat("-", 80), commentary)
		return nil
	}
}
