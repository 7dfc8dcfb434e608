package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"tidydocs/internal/ai"
	"tidydocs/internal/config"
	"tidydocs/internal/organizer"
	"tidydocs/pkg/fileops"
)

func analyzeDocsTool() mcp.Tool {
	return mcp.NewTool("analyze_docs",
		mcp.WithDescription("Analyze the markdown documents under a directory and suggest where misplaced ones should move. Nothing is modified."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Directory to analyze"),
		),
		mcp.WithBoolean("use_ai",
			mcp.Description("Consult the configured AI provider for documents the patterns cannot classify confidently"),
		),
	)
}

func applyMovesTool() mcp.Tool {
	return mcp.NewTool("apply_moves",
		mcp.WithDescription("Analyze the markdown documents under a directory and move the ones whose suggested relocation meets the auto-apply confidence threshold."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Directory to organize"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Report what would move without touching the filesystem"),
		),
		mcp.WithNumber("min_confidence",
			mcp.Description("Override the configured auto-apply confidence threshold (0-1)"),
		),
	)
}

func healthCheckTool() mcp.Tool {
	return mcp.NewTool("health_check",
		mcp.WithDescription("Survey the markdown documents under a directory: placement, orphans, staleness, and naming, condensed into a 0-100 health score. Nothing is modified."),
		mcp.WithString("dir",
			mcp.Required(),
			mcp.Description("Directory to check"),
		),
	)
}

// newEngine resolves configuration for the requested directory and builds an
// engine over it. The AI enhancer is only constructed when asked for, so
// plain analysis never needs credentials.
func (s *Server) newEngine(dir string, useAI bool) (*organizer.Engine, error) {
	root := fileops.ExpandPath(dir)

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	var enhancer *ai.Enhancer
	if useAI {
		classifier, err := ai.NewClassifier(ai.Config{
			Provider: cfg.AI.Provider,
			Model:    cfg.AI.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("AI classifier unavailable: %w", err)
		}
		enhancer = ai.NewEnhancer(classifier, cfg.AI.FallbackThreshold, s.logger)
	}

	return organizer.New(cfg, root, enhancer, s.logger), nil
}

func (s *Server) handleAnalyzeDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := req.RequireString("dir")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	useAI := req.GetBool("use_ai", false)

	engine, err := s.newEngine(dir, useAI)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := engine.GenerateSuggestions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("Analyzed documents", "dir", dir, "suggestions", report.Suggested)
	return jsonResult(report)
}

func (s *Server) handleApplyMoves(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := req.RequireString("dir")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dryRun := req.GetBool("dry_run", false)
	minConfidence := req.GetFloat("min_confidence", 0)

	engine, err := s.newEngine(dir, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, err := engine.GenerateSuggestions(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := engine.ApplyMoves(ctx, organizer.ApplyOptions{
		DryRun:        dryRun,
		MinConfidence: minConfidence,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("Applied moves", "dir", dir, "applied", report.Applied, "failed", report.Failed)
	return jsonResult(report)
}

func (s *Server) handleHealthCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := req.RequireString("dir")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	engine, err := s.newEngine(dir, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := engine.HealthCheck()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("Health check complete", "dir", dir, "score", report.Score)
	return jsonResult(report)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
