package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Parse flags
	operation := flag.String("op", "list", "Operation: list or get")
	count := flag.Int("count", 10, "Max datasets to return (for list)")
	urn := flag.String("urn", "", "Dataset URN to fetch (for get)")
	flag.Parse()

	ctx := context.Background()

	// Create a new client
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v1.0.0"}, nil)

	// Connect to server over stdin/stdout
	fmt.Println("Connecting to MCP server...")
	transport := &mcp.CommandTransport{Command: exec.Command("./server")}
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		log.Fatalf("Connect failed: %v", err)
	}
	defer session.Close()

	// List available tools
	fmt.Println("\nAvailable tools:")
	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Fatalf("ListTools failed: %v", err)
	}
	for _, tool := range tools.Tools {
		fmt.Printf("  • %s\n    %s\n", tool.Name, tool.Description)
	}

	// Execute the requested operation
	fmt.Printf("\nExecuting: %s\n", *operation)
	var params *mcp.CallToolParams

	switch *operation {
	case "list":
		params = &mcp.CallToolParams{
			Name: "dataset_list",
			Arguments: map[string]any{
				"count": *count,
			},
		}

	case "get":
		if *urn == "" {
			log.Fatalf("urn is required for get operation")
		}
		params = &mcp.CallToolParams{
			Name: "dataset_get_by_urn",
			Arguments: map[string]any{
				"urn": *urn,
			},
		}

	default:
		log.Fatalf("Unknown operation: %s", *operation)
	}

	// Call the tool
	fmt.Println("\nCalling tool...")
	res, err := session.CallTool(ctx, params)
	if err != nil {
		log.Fatalf("CallTool failed: %v", err)
	}

	// Print results
	if res.IsError {
		fmt.Println("\n✗ Tool returned error:")
		for _, c := range res.Content {
			if tc, ok := c.(*mcp.TextContent); ok {
				fmt.Printf("  %s\n", tc.Text)
			}
		}
	} else {
		fmt.Println("\n✓ Tool succeeded!")
		for _, c := range res.Content {
			if tc, ok := c.(*mcp.TextContent); ok {
				// Try to parse as JSON for pretty printing
				var data interface{}
				if err := json.Unmarshal([]byte(tc.Text), &data); err == nil {
					b, _ := json.MarshalIndent(data, "", "  ")
					fmt.Printf("%s\n", string(b))
				} else {
					fmt.Printf("%s\n", tc.Text)
				}
			}
		}
	}
}
