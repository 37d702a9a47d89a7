package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arturoeanton/portfolio-rag/internal/handler"
)

const serverVersion = "1.0.0"

// Server implements the Model Context Protocol (MCP) server.
// It exposes the answer pipeline to external AI agents as the ask_profile tool.
type Server struct {
	answers handler.Answerer
	port    string
	mcp     *server.MCPServer
	http    *server.StreamableHTTPServer
}

// NewServer creates a new MCP server.
func NewServer(name string, answers handler.Answerer, port string) *Server {
	s := &Server{answers: answers, port: port}
	s.mcp = server.NewMCPServer(name, serverVersion, server.WithToolCapabilities(true))
	s.mcp.AddTool(askProfileTool(), s.handleAskProfile)
	s.http = server.NewStreamableHTTPServer(s.mcp)
	return s
}

// Start begins the MCP server on the configured port. It blocks.
func (s *Server) Start() error {
	slog.Info("MCP server starting", "port", s.port)
	return s.http.Start(":" + s.port)
}

// Shutdown stops the MCP HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func askProfileTool() mcp.Tool {
	return mcp.NewTool("ask_profile",
		mcp.WithDescription("Ask a question about the portfolio owner's background, projects, skills, or achievements"),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Natural-language question, e.g. 'What hackathons have you won?'"),
		),
	)
}

func (s *Server) handleAskProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil || strings.TrimSpace(question) == "" {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent("Error: question parameter is required"),
			},
			IsError: true,
		}, nil
	}

	result, err := s.answers.Answer(ctx, question)
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(fmt.Sprintf("Answer error: %v", err)),
			},
			IsError: true,
		}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(formatAnswer(result.Text, result.Images)),
		},
	}, nil
}

// formatAnswer renders the answer as markdown with images listed after it.
func formatAnswer(text string, images []string) string {
	if len(images) == 0 {
		return text
	}
	var sb strings.Builder
	sb.WriteString(text)
	sb.WriteString("\n\n**Images:**\n")
	for _, img := range images {
		sb.WriteString("- ")
		sb.WriteString(img)
		sb.WriteString("\n")
	}
	return sb.String()
}
