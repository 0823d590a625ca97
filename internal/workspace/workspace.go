// Package workspace assembles a sandboxed tool session: a contained
// filesystem root, a persistent environment, an exec policy, and a
// registry of tools, with a single Dispatch entry point that validates
// arguments and classifies failures.
package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/agentfoundry/toolbench/internal/environ"
	"github.com/agentfoundry/toolbench/internal/execpolicy"
	"github.com/agentfoundry/toolbench/internal/fspath"
	"github.com/agentfoundry/toolbench/internal/tools"
	"github.com/agentfoundry/toolbench/internal/tools/handlers"
)

// DefaultShellTimeout applies when Options.ShellTimeout is zero.
const DefaultShellTimeout = 10 * time.Second

// Options configures a Workspace. Root is required; everything else has
// a working default.
type Options struct {
	// Root is the directory all file tools are confined to. Created on
	// Initialize if missing.
	Root string

	// ShellTimeout bounds each shell command. Defaults to
	// DefaultShellTimeout.
	ShellTimeout time.Duration

	// AllowedHosts restricts ping and http_fetch. Empty means
	// unrestricted.
	AllowedHosts []string

	// EnvOverrides are applied to the seeded session environment.
	EnvOverrides map[string]string

	// EnvPolicy controls which host variables seed the session
	// environment. Zero value inherits everything.
	EnvPolicy environ.SeedPolicy

	// ExecPolicy screens shell commands. Nil allows everything.
	ExecPolicy *execpolicy.Policy

	// Logger receives dispatch-boundary logging. Defaults to a logger
	// that discards output.
	Logger *logrus.Logger
}

// Workspace is a stateful tool session. It is not safe for concurrent
// Dispatch calls; callers run one tool at a time.
type Workspace struct {
	root     string
	env      *environ.Map
	registry *tools.Registry
	log      *logrus.Logger
}

// Failure kinds reported in Result.Failure.Kind.
const (
	FailContainment   = "containment"
	FailNotFound      = "not_found"
	FailBinaryContent = "binary_content"
	FailEditMatch     = "edit_match"
	FailSpawn         = "spawn"
	FailNetworkPolicy = "network_policy"
	FailExecPolicy    = "exec_policy"
	FailValidation    = "validation"
	FailUnknownTool   = "unknown_tool"
	FailInternal      = "internal"
)

// Failure describes why a dispatch did not produce output.
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Result is the outcome of a single Dispatch call.
type Result struct {
	CallID  string   `json:"callId"`
	Tool    string   `json:"tool"`
	Output  string   `json:"output,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

// Ok reports whether the call produced output.
func (r *Result) Ok() bool { return r.Failure == nil }

// New builds a Workspace from opts and registers the bundled tools.
// The root is made absolute so containment checks are stable regardless
// of the process working directory.
func New(opts Options) (*Workspace, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("workspace root is required")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	env := environ.New(opts.EnvPolicy)
	for k, v := range opts.EnvOverrides {
		env.Set(k, v)
	}

	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	timeout := opts.ShellTimeout
	if timeout <= 0 {
		timeout = DefaultShellTimeout
	}
	allowed := handlers.HostAllowList(opts.AllowedHosts)

	registry := tools.NewRegistry()
	for _, d := range []tools.Descriptor{
		handlers.NewReadFileTool(root),
		handlers.NewWriteFileTool(root),
		handlers.NewEditFileTool(root),
		handlers.NewListDirTool(root),
		handlers.NewSearchFilesTool(root),
		handlers.NewShellTool(root, env, timeout, opts.ExecPolicy, log),
		handlers.NewSetEnvTool(env),
		handlers.NewGetEnvTool(env),
		handlers.NewCurrentTimeTool(),
		handlers.NewSystemInfoTool(),
		handlers.NewPingTool(allowed),
		handlers.NewHTTPFetchTool(allowed),
	} {
		if err := registry.Register(d); err != nil {
			return nil, fmt.Errorf("registering %s: %w", d.Name, err)
		}
	}

	return &Workspace{
		root:     root,
		env:      env,
		registry: registry,
		log:      log,
	}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string { return w.root }

// Registry exposes the tool registry, for adapters that need the
// descriptor list.
func (w *Workspace) Registry() *tools.Registry { return w.registry }

// Env exposes the session environment.
func (w *Workspace) Env() *environ.Map { return w.env }

// Initialize creates the workspace root if it does not exist. Calling
// it on an existing root is a no-op.
func (w *Workspace) Initialize() error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("creating workspace root %s: %w", w.root, err)
	}
	return nil
}

// Teardown removes the workspace root and everything under it. Removal
// errors are logged, not returned; teardown is best effort.
func (w *Workspace) Teardown() {
	if err := os.RemoveAll(w.root); err != nil {
		w.log.WithError(err).WithField("root", w.root).Warn("workspace teardown failed")
	}
}

// Dispatch runs the named tool with the given arguments. Arguments are
// validated against the tool's declared schema before the handler runs.
// Handler errors are classified into Failure kinds rather than returned,
// so a caller always gets a Result it can hand back to a model.
func (w *Workspace) Dispatch(ctx context.Context, name string, args map[string]any) *Result {
	result := &Result{
		CallID: uuid.NewString(),
		Tool:   name,
	}
	entry := w.log.WithFields(logrus.Fields{
		"callId": result.CallID,
		"tool":   name,
	})

	desc, ok := w.registry.Get(name)
	if !ok {
		result.Failure = &Failure{Kind: FailUnknownTool, Message: fmt.Sprintf("unknown tool: %s", name)}
		entry.WithField("kind", result.Failure.Kind).Warn("dispatch failed")
		return result
	}

	if args == nil {
		args = map[string]any{}
	}
	if err := tools.ValidateArgs(desc.InputSchema, args); err != nil {
		result.Failure = classify(err)
		entry.WithField("kind", result.Failure.Kind).Warn("dispatch failed")
		return result
	}

	start := time.Now()
	output, err := desc.Handler(ctx, args)
	if err != nil {
		result.Failure = classify(err)
		entry.WithFields(logrus.Fields{
			"kind":     result.Failure.Kind,
			"duration": time.Since(start),
		}).Warn("dispatch failed")
		return result
	}

	result.Output = output
	entry.WithField("duration", time.Since(start)).Debug("dispatch ok")
	return result
}

// DispatchJSON is Dispatch for callers holding raw JSON arguments, as
// every provider adapter does.
func (w *Workspace) DispatchJSON(ctx context.Context, name string, argsJSON []byte) *Result {
	args := map[string]any{}
	if len(argsJSON) > 0 {
		if err := json.Unmarshal(argsJSON, &args); err != nil {
			return &Result{
				CallID:  uuid.NewString(),
				Tool:    name,
				Failure: &Failure{Kind: FailValidation, Message: fmt.Sprintf("invalid arguments JSON: %v", err)},
			}
		}
	}
	return w.Dispatch(ctx, name, args)
}

func classify(err error) *Failure {
	f := &Failure{Message: err.Error()}
	switch {
	case fspath.IsContainmentError(err):
		f.Kind = FailContainment
	case tools.IsNotFound(err):
		f.Kind = FailNotFound
	case tools.IsBinaryContent(err):
		f.Kind = FailBinaryContent
	case tools.IsEditMatch(err):
		f.Kind = FailEditMatch
	case tools.IsSpawn(err):
		f.Kind = FailSpawn
	case tools.IsNetworkPolicy(err):
		f.Kind = FailNetworkPolicy
	case tools.IsExecPolicy(err):
		f.Kind = FailExecPolicy
	case tools.IsValidation(err):
		f.Kind = FailValidation
	default:
		f.Kind = FailInternal
	}
	return f
}
