package server

import (
	"encoding/json"
	"testing"
)

func TestNew(t *testing.T) {
	srv := New()
	if srv == nil {
		t.Fatal("New returned nil")
	}
	if srv.cache == nil {
		t.Error("server created without an image cache")
	}
}

func TestHandleInitialize(t *testing.T) {
	srv := New()
	req := &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"}

	resp := srv.handleRequest(req)
	if resp == nil {
		t.Fatal("expected a response")
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result is not a map: %T", resp.Result)
	}
	info, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("missing serverInfo")
	}
	if info["name"] != "hexlattice-mcp" {
		t.Errorf("server name: got %v, want hexlattice-mcp", info["name"])
	}
}

func TestHandleToolsList(t *testing.T) {
	srv := New()
	req := &MCPRequest{JSONRPC: "2.0", ID: 2, Method: "tools/list"}

	resp := srv.handleRequest(req)
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result is not a map: %T", resp.Result)
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools is not a []Tool: %T", result["tools"])
	}

	want := []string{
		"pattern_generate_svg",
		"pattern_render",
		"pattern_geometry",
		"field_inspect",
		"lattice_preview",
	}
	if len(tools) != len(want) {
		t.Fatalf("tool count: got %d, want %d", len(tools), len(want))
	}

	names := make(map[string]bool)
	for _, tool := range tools {
		names[tool.Name] = true
		if tool.Description == "" {
			t.Errorf("tool %s has no description", tool.Name)
		}
		if tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", tool.Name)
		}
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("missing tool: %s", name)
		}
	}
}

func TestHandlePing(t *testing.T) {
	srv := New()
	resp := srv.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 3, Method: "ping"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("ping failed: %+v", resp)
	}
}

func TestHandleNotificationInitialized(t *testing.T) {
	srv := New()
	resp := srv.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})
	if resp != nil {
		t.Errorf("notifications must not produce a response, got %+v", resp)
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	srv := New()
	resp := srv.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 4, Method: "bogus/method"})
	if resp == nil || resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("error code: got %d, want -32601", resp.Error.Code)
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	srv := New()
	params, _ := json.Marshal(ToolCallParams{Name: "no_such_tool", Arguments: json.RawMessage(`{}`)})
	resp := srv.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 5, Method: "tools/call", Params: params})
	if resp == nil || resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	srv := New()
	resp := srv.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      6,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp == nil || resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestMCPRequestUnmarshal(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		method string
	}{
		{
			name:   "initialize request",
			input:  `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
			method: "initialize",
		},
		{
			name:   "tools call request",
			input:  `{"jsonrpc":"2.0","id":"abc","method":"tools/call","params":{"name":"pattern_geometry","arguments":{"path":"/tmp/x.png"}}}`,
			method: "tools/call",
		},
		{
			name:   "notification without id",
			input:  `{"jsonrpc":"2.0","method":"notifications/initialized"}`,
			method: "notifications/initialized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.input), &req); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if req.Method != tt.method {
				t.Errorf("method: got %s, want %s", req.Method, tt.method)
			}
		})
	}
}
