package main

import (
	"context"
	"fmt"
	"strings"

	oraclerpc "lernova/internal/modules/oracle/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

const minTermLength = 3

// server answers classification prompts offline by matching topic terms
// against the URL under review.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *oraclerpc.Empty) (*oraclerpc.Metadata, error) {
	return &oraclerpc.Metadata{Name: "keyword-oracle", Version: "1.0.0", Model: "term-overlap"}, nil
}

func (s *server) Complete(_ context.Context, in *oraclerpc.CompleteRequest) (*oraclerpc.CompleteResponse, error) {
	fields := promptFields(in.Prompt)
	target := strings.ToLower(fields["Website to check"] + " " + fields["Domain"])
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("prompt has no website to check")
	}

	terms := strings.FieldsFunc(strings.ToLower(fields["Topic"]+" "+fields["Keywords"]), func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '-'
	})
	for _, term := range terms {
		if len(term) < minTermLength {
			continue
		}
		if strings.Contains(target, term) {
			return reply("ALLOW", 80, fmt.Sprintf("The address mentions %q, which matches the topic.", term)), nil
		}
	}
	return reply("BLOCK", 60, "Nothing in the address relates to the topic."), nil
}

func reply(decision string, confidence int, reason string) *oraclerpc.CompleteResponse {
	return &oraclerpc.CompleteResponse{
		Text: fmt.Sprintf("DECISION: %s\nCONFIDENCE: %d\nREASON: %s", decision, confidence, reason),
	}
}

// promptFields collects "Label: value" lines; the first occurrence wins.
func promptFields(prompt string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(prompt, "\n") {
		label, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		if _, seen := out[label]; seen {
			continue
		}
		out[label] = strings.TrimSpace(value)
	}
	return out
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: oraclerpc.HandshakeConfig,
		Plugins:         oraclerpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
