package grading

import (
	"context"
	"fmt"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Capability is the narrow contract the pipeline requires from the
// underlying vision/language model: one blocking call accepting a
// textual instruction plus zero or more image data URIs, returning
// free-form text expected (but not guaranteed) to contain JSON.
// It is injected so tests can substitute a fake.
type Capability interface {
	Invoke(ctx context.Context, prompt string, images []string) (string, error)
}

// agentCapability implements Capability on a go-agents vision agent.
// An agent is created per call; agents are cheap to construct and this
// keeps the capability safe for concurrent use across files.
type agentCapability struct {
	config gaconfig.AgentConfig
}

// NewCapability creates a Capability backed by the configured go-agents provider.
func NewCapability(cfg gaconfig.AgentConfig) Capability {
	return &agentCapability{config: cfg}
}

func (c *agentCapability) Invoke(ctx context.Context, prompt string, images []string) (string, error) {
	a, err := agent.New(&c.config)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	if len(images) == 0 {
		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("chat call: %w", err)
		}
		return resp.Content(), nil
	}

	resp, err := a.Vision(ctx, prompt, images)
	if err != nil {
		return "", fmt.Errorf("vision call: %w", err)
	}

	return resp.Content(), nil
}

// EncodeImage converts an uploaded page image into the data-URI form
// the capability accepts, selecting the format from the declared
// content type. Unrecognized types are treated as JPEG, the dominant
// format for phone-scanned exam pages.
func EncodeImage(f File) (string, error) {
	format := document.JPEG
	if f.ContentType == "image/png" {
		format = document.PNG
	}

	dataURI, err := encoding.EncodeImageDataURI(f.Data, format)
	if err != nil {
		return "", fmt.Errorf("encode image %s: %w", f.Name, err)
	}

	return dataURI, nil
}
