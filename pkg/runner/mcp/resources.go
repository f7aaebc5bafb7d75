package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerPaletteResource(srv, svc)
	registerDayTemplate(srv, svc)
	registerPeriodTemplate(srv, svc)
}

func registerPaletteResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"daybook://palette",
		"Palette",
		mcp.WithResourceDescription("Saved item colors, addressable by 1-based index."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if err := svc.ready(); err != nil {
			return nil, err
		}
		colors := svc.App.Palette()
		payload := map[string]any{
			"colors": colors,
			"count":  len(colors),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"daybook://days/{date}",
		"Day",
		mcp.WithTemplateDescription("Schedules and todos of one date."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date := templateArg(request, "date")
		if date == "" {
			return nil, fmt.Errorf("date is required")
		}
		day, err := svc.Day(date, "")
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, day)
	})
}

func registerPeriodTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"daybook://items/{id}/periods",
		"Item Periods",
		mcp.WithTemplateDescription("Dates and ranges of the group an item belongs to."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request, "id")
		if id == "" {
			return nil, fmt.Errorf("item id is required")
		}
		period, err := svc.Periods(id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, period)
	})
}

// templateArg reads a URI template variable. Depending on the matcher the
// value arrives as a string or a single-element slice.
func templateArg(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
