package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HTTPHandlerOptions configures the HTTP transport behavior.
type HTTPHandlerOptions struct {
	// Stateless disables session management. The screening tools are all
	// request/response and never push server-to-client requests, so
	// stateless mode is safe when clients prefer it. Default: false.
	Stateless bool
}

// NewHTTPHandler exposes the MCP server over Streamable HTTP. The handler
// mounts on a plain http.ServeMux path, typically "/mcp", alongside the
// health and landing handlers.
func NewHTTPHandler(server *Server, opts *HTTPHandlerOptions) http.Handler {
	if opts == nil {
		opts = &HTTPHandlerOptions{}
	}

	sdkOpts := &mcp.StreamableHTTPOptions{
		Stateless: opts.Stateless,
	}

	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server.MCPServer()
	}, sdkOpts)
}
