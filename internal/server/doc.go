// Package server implements the MCP (Model Context Protocol) server for photo
// color analysis.
//
// This package provides a JSON-RPC 2.0 server that exposes the photo color
// pipeline through the MCP protocol, so that MCP-compatible clients can ask
// for color diagnostics and corrected copies of photos on disk.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - photo_load: Image header metadata
//   - photo_analyze: Color statistics, classification, tips and editor settings
//   - photo_correct: Analysis plus a corrected image (file or base64)
//   - photo_analyze_batch: photo_analyze over many files in parallel
//
// # State
//
// Nothing is cached between calls. Every tool call reads its files afresh and
// runs the pipeline from scratch.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description. Images that cannot be
//     decoded use the user-facing failure message.
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg, logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
