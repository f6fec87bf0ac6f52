package out

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	oraclerpc "lernova/internal/modules/oracle/adapter/out/rpc"
	"lernova/internal/modules/oracle/domain"
	oracleout "lernova/internal/modules/oracle/port/out"
)

const defaultStartTimeout = 3 * time.Second

// PluginProvider runs the oracle as a go-plugin child process. The process is
// started on first use, reused across calls and restarted if it exits.
type PluginProvider struct {
	binary string
	sha256 string
	logger hclog.Logger

	mu     sync.Mutex
	client *plugin.Client
	rpc    oraclerpc.OracleClient
	meta   *domain.Metadata
}

// NewPluginProvider verifies the binary against sum when sum is set.
func NewPluginProvider(binary, sum string, logger hclog.Logger) oracleout.Provider {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PluginProvider{binary: binary, sha256: sum, logger: logger.Named("oracle-plugin")}
}

func (p *PluginProvider) Metadata(ctx context.Context) (domain.Metadata, error) {
	client, err := p.connect()
	if err != nil {
		return domain.Metadata{}, err
	}
	p.mu.Lock()
	cached := p.meta
	p.mu.Unlock()
	if cached != nil {
		return *cached, nil
	}

	meta, err := client.GetMetadata(ctx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	out := domain.Metadata{Name: meta.Name, Version: meta.Version, Model: meta.Model}
	p.mu.Lock()
	p.meta = &out
	p.mu.Unlock()
	return out, nil
}

func (p *PluginProvider) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	client, err := p.connect()
	if err != nil {
		return "", err
	}
	resp, err := client.Complete(ctx, &oraclerpc.CompleteRequest{
		System:      req.System,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   int32(req.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("plugin complete: %w", err)
	}
	return resp.Text, nil
}

func (p *PluginProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Kill()
	}
	p.client = nil
	p.rpc = nil
	p.meta = nil
	return nil
}

func (p *PluginProvider) connect() (oraclerpc.OracleClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil && !p.client.Exited() && p.rpc != nil {
		return p.rpc, nil
	}
	if p.client != nil {
		p.client.Kill()
		p.client, p.rpc, p.meta = nil, nil, nil
	}

	if err := verifyChecksum(p.binary, p.sha256); err != nil {
		return nil, err
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  oraclerpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          oraclerpc.PluginMap(nil),
		Cmd:              exec.Command(p.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           p.logger,
	})
	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("%w: start plugin: %v", domain.ErrProviderUnavailable, err)
	}
	raw, err := rpcClient.Dispense(oraclerpc.PluginMapKey)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(oraclerpc.OracleClient)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	p.client = client
	p.rpc = typed
	p.logger.Debug("oracle plugin started", "binary", p.binary)
	return typed, nil
}

func verifyChecksum(path, expected string) error {
	if expected == "" {
		return nil
	}
	if !domain.ValidChecksum(expected) {
		return fmt.Errorf("oracle plugin sha256 must be lowercase 64-char hex")
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}
