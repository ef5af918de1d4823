package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for launchpad resources.
const uriScheme = "launchpad://"

// appInfo is the resource form of an application.
type appInfo struct {
	Name           string   `json:"name"`
	LocalizedNames []string `json:"localized_names,omitempty"`
	Path           string   `json:"path"`
	BundleID       string   `json:"bundle_id,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "applications",
		Name:        "applications",
		Description: "Installed applications known to the launcher",
		MIMEType:    "application/json",
	}, s.handleApplicationsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "shortcuts",
		Name:        "shortcuts",
		Description: "Registered automation shortcuts",
		MIMEType:    "application/json",
	}, s.handleShortcutsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "applications/{name}",
		Name:        "application",
		Description: "One installed application by name",
		MIMEType:    "application/json",
	}, s.handleApplicationResource)
}

// handleApplicationsResource returns the application catalog.
func (s *Server) handleApplicationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return jsonResource(req.Params.URI, []appInfo{})
	}

	apps, err := s.ports.Catalog.Applications(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}

	infos := make([]appInfo, len(apps))
	for i := range apps {
		infos[i] = appInfo{
			Name:           apps[i].Name,
			LocalizedNames: apps[i].LocalizedNames,
			Path:           apps[i].Path,
			BundleID:       apps[i].BundleID,
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleShortcutsResource returns the shortcut names.
func (s *Server) handleShortcutsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return jsonResource(req.Params.URI, []string{})
	}

	shortcuts, err := s.ports.Catalog.Shortcuts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing shortcuts: %w", err)
	}

	names := make([]string, len(shortcuts))
	for i := range shortcuts {
		names[i] = shortcuts[i].Name
	}
	return jsonResource(req.Params.URI, names)
}

// handleApplicationResource returns one application matched by any of its names.
func (s *Server) handleApplicationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	name := extractApplicationName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	apps, err := s.ports.Catalog.Applications(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	for i := range apps {
		for _, n := range apps[i].Names() {
			if strings.EqualFold(n, name) {
				return jsonResource(req.Params.URI, appInfo{
					Name:           apps[i].Name,
					LocalizedNames: apps[i].LocalizedNames,
					Path:           apps[i].Path,
					BundleID:       apps[i].BundleID,
				})
			}
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractApplicationName extracts the name from a URI like launchpad://applications/{name}.
// The name may be percent-encoded.
func extractApplicationName(uri string) string {
	const prefix = uriScheme + "applications/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	name := strings.TrimPrefix(uri, prefix)
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return name
}
