package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/supraja777/multiagent"
	"github.com/supraja777/multiagent/internal/presentation/graph"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
)

var errGraphOnly = errors.New("engine built for graph rendering only")

// graphOnlyGateway backs engines that are built to expose their topology.
func graphOnlyGateway(ctx context.Context, req domain.Request) (*domain.Response, error) {
	return nil, errGraphOnly
}

// RenderGraph writes the routing graph as a Mermaid flowchart. With a runID
// the path of that archived run is highlighted.
func RenderGraph(ctx context.Context, configPath, runID string, w io.Writer) error {
	cfg, err := loadConfig(configPath, false)
	if err != nil {
		return err
	}

	engine, err := multiagent.New(ports.GatewayFunc(graphOnlyGateway))
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if runID != "" {
		archive, closeArchive, err := newArchive(cfg)
		if err != nil {
			return err
		}
		if closeArchive != nil {
			defer closeArchive()
		}
		if archive == nil {
			return errArchiveDisabled
		}
		transcript, err := archive.Load(ctx, runID)
		if err != nil {
			return fmt.Errorf("failed to load run %q: %w", runID, err)
		}
		overlay = graph.OverlayFromTranscript(transcript)
	}

	_, err = fmt.Fprintln(w, graph.GenerateMermaid(engine.Graph(), overlay))
	return err
}
