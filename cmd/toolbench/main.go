// Command toolbench hosts a sandboxed tool workspace. It can list the
// bundled tools, print their provider-specific schemas, run a single
// tool call, or serve the workspace over MCP stdio.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/agentfoundry/toolbench/internal/config"
	"github.com/agentfoundry/toolbench/internal/provider"
	"github.com/agentfoundry/toolbench/internal/tools"
	"github.com/agentfoundry/toolbench/internal/version"
	"github.com/agentfoundry/toolbench/internal/workspace"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "toolbench:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "list":
		return runList(rest)
	case "schema":
		return runSchema(rest)
	case "call":
		return runCall(rest)
	case "mcp":
		return runMCP(rest)
	case "version":
		fmt.Println(version.Version)
		return nil
	case "-h", "--help", "help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: toolbench <command> [flags]

commands:
  list                      list the registered tools
  schema [-provider p] [-strict] [tool]
                            print tool schemas in a provider wire shape
  call <tool> [json-args]   run one tool call and print the result
  mcp                       serve the workspace over MCP stdio
  version                   print the build version

common flags:
  -config path              TOML config file
  -root dir                 workspace root (overrides config)`)
}

// buildWorkspace resolves flags and config into a ready workspace.
func buildWorkspace(fs *flag.FlagSet, args []string) (*workspace.Workspace, error) {
	configPath := fs.String("config", "", "TOML config file")
	root := fs.String("root", "", "workspace root directory")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *root != "" {
		cfg.Root = *root
	}
	if cfg.Root == "" {
		return nil, fmt.Errorf("workspace root is required (set -root or root in the config)")
	}

	log, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	log.SetOutput(os.Stderr)

	opts, err := cfg.WorkspaceOptions(log)
	if err != nil {
		return nil, err
	}
	ws, err := workspace.New(opts)
	if err != nil {
		return nil, err
	}
	if err := ws.Initialize(); err != nil {
		return nil, err
	}
	return ws, nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	ws, err := buildWorkspace(fs, args)
	if err != nil {
		return err
	}
	for _, d := range ws.Registry().Descriptors() {
		fmt.Printf("%-14s %s\n", d.Name, d.Description)
	}
	return nil
}

func runSchema(args []string) error {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	providerName := fs.String("provider", "openai", "wire shape: openai, anthropic or gemini")
	strict := fs.Bool("strict", false, "apply the strict schema transformation")
	ws, err := buildWorkspace(fs, args)
	if err != nil {
		return err
	}

	descs := ws.Registry().Descriptors()
	if name := fs.Arg(0); name != "" {
		d, ok := ws.Registry().Get(name)
		if !ok {
			return fmt.Errorf("unknown tool %q", name)
		}
		descs = []tools.Descriptor{d}
	}

	var payload any
	switch *providerName {
	case "openai":
		payload = provider.OpenAITools(descs, *strict)
	case "anthropic":
		payload = provider.AnthropicTools(descs, *strict)
	case "gemini":
		payload = provider.GeminiTools(descs)
	default:
		return fmt.Errorf("unknown provider %q", *providerName)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func runCall(args []string) error {
	fs := flag.NewFlagSet("call", flag.ContinueOnError)
	// flag parsing stops at the first non-flag argument, so flags must
	// come before the tool name.
	ws, err := buildWorkspace(fs, args)
	if err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("usage: toolbench call [flags] <tool> [json-args]")
	}
	name := rest[0]
	argsJSON := []byte("{}")
	if len(rest) > 1 {
		argsJSON = []byte(rest[1])
	}

	result := ws.DispatchJSON(context.Background(), name, argsJSON)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if !result.Ok() {
		os.Exit(1)
	}
	return nil
}

func runMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	ws, err := buildWorkspace(fs, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logrus.WithField("root", ws.Root()).Info("serving MCP over stdio")
	return provider.ServeMCPStdio(ctx, ws)
}
