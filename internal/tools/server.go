// Package tools exposes the emotion analyses as MCP tools.
package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/spacesedan/emotionmcp/internal/analysis"
	"github.com/spacesedan/emotionmcp/internal/models"
	"github.com/spacesedan/emotionmcp/internal/sentiment"
)

const (
	ServerName    = "mcp-emotion-analysis"
	ServerVersion = "1.0.0"

	ToolAnalyzeSentiment         = "analyze_sentiment"
	ToolAnalyzeSentimentDetailed = "analyze_sentiment_detailed"
	ToolCompareSentiments        = "compare_sentiments"
	ToolAnalyzePolarity          = "analyze_polarity"
)

const labelList = "admiration, amusement, anger, annoyance, approval, caring, confusion, " +
	"curiosity, desire, disappointment, disapproval, disgust, embarrassment, excitement, " +
	"fear, gratitude, grief, joy, love, nervousness, optimism, pride, realization, relief, " +
	"remorse, sadness, surprise, neutral"

// Handlers binds the tool handlers to one Analyzer.
type Handlers struct {
	analyzer *analysis.Analyzer
}

func NewHandlers(analyzer *analysis.Analyzer) *Handlers {
	return &Handlers{analyzer: analyzer}
}

// NewServer builds the MCP server with every tool registered.
func NewServer(analyzer *analysis.Analyzer) *server.MCPServer {
	s := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	Register(s, NewHandlers(analyzer))
	return s
}

func Register(s *server.MCPServer, h *Handlers) {
	s.AddTool(mcp.NewTool(ToolAnalyzeSentiment,
		mcp.WithDescription("Detects the main emotions in a text using the 28-label GoEmotions classifier. "+
			"Returns the top emotions with localized names and probabilities. Labels: "+labelList+"."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to analyze (any language, best in English)")),
		mcp.WithNumber("top_k",
			mcp.Description("Number of top emotions to return (default 5). Values outside 1-28 are clamped into that range"),
			mcp.DefaultNumber(analysis.DefaultTopK),
			mcp.Min(1),
			mcp.Max(28),
		),
	), h.AnalyzeSentiment)

	s.AddTool(mcp.NewTool(ToolAnalyzeSentimentDetailed,
		mcp.WithDescription("Returns all 28 GoEmotions emotions sorted by probability, each tagged with a "+
			"confidence tier (high >= 50%, medium 10-50%, low < 10%), plus counts per tier."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to analyze")),
	), h.AnalyzeSentimentDetailed)

	s.AddTool(mcp.NewTool(ToolCompareSentiments,
		mcp.WithDescription("Compares the dominant emotions of several texts side by side, "+
			"with the top 3 emotions of each text in input order."),
		mcp.WithArray("texts",
			mcp.Required(),
			mcp.Description("Texts to analyze and compare"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), h.CompareSentiments)

	s.AddTool(mcp.NewTool(ToolAnalyzePolarity,
		mcp.WithDescription("Scores overall positive/negative polarity of a text with VADER. "+
			"Markdown and links are stripped first."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to score")),
	), h.AnalyzePolarity)
}

func (h *Handlers) AnalyzeSentiment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	topK := req.GetInt("top_k", analysis.DefaultTopK)

	return run(ctx, ToolAnalyzeSentiment, func(ctx context.Context) (any, error) {
		return h.analyzer.TopEmotions(ctx, text, topK)
	})
}

func (h *Handlers) AnalyzeSentimentDetailed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return run(ctx, ToolAnalyzeSentimentDetailed, func(ctx context.Context) (any, error) {
		return h.analyzer.Detailed(ctx, text)
	})
}

func (h *Handlers) CompareSentiments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	texts, err := req.RequireStringSlice("texts")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return run(ctx, ToolCompareSentiments, func(ctx context.Context) (any, error) {
		return h.analyzer.Compare(ctx, texts)
	})
}

func (h *Handlers) AnalyzePolarity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return run(ctx, ToolAnalyzePolarity, func(context.Context) (any, error) {
		p := sentiment.AnalyzeWithVADER(text)
		return &models.PolarityResponse{
			Text:     text,
			Compound: p.Compound,
			Positive: p.Positive,
			Neutral:  p.Neutral,
			Negative: p.Negative,
			Label:    p.Label,
		}, nil
	})
}

// run executes fn and renders its result as the tool's JSON text. Errors
// from fn are returned unchanged.
func run(ctx context.Context, tool string, fn func(context.Context) (any, error)) (*mcp.CallToolResult, error) {
	requestID := uuid.NewString()
	start := time.Now()
	slog.Info("[Tools] Call started",
		slog.String("tool", tool),
		slog.String("request_id", requestID))

	resp, err := fn(ctx)
	if err != nil {
		slog.Error("[Tools] Call failed",
			slog.String("tool", tool),
			slog.String("request_id", requestID),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}

	out, err := analysis.RenderJSON(resp)
	if err != nil {
		return nil, err
	}

	slog.Info("[Tools] Call finished",
		slog.String("tool", tool),
		slog.String("request_id", requestID),
		slog.Duration("elapsed", time.Since(start)))

	return mcp.NewToolResultText(out), nil
}
