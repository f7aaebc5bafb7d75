package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddItemTool(srv, svc)
	registerAddPeriodTool(srv, svc)
	registerListDayTool(srv, svc)
	registerGetPeriodsTool(srv, svc)
	registerReshapeTool(srv, svc)
	registerDeleteTool(srv, svc)
	registerToggleTool(srv, svc)
}

func kindOption() mcp.ToolOption {
	return mcp.WithString("kind",
		mcp.Required(),
		mcp.Description("Item kind."),
		mcp.Enum("todo", "schedule"),
	)
}

func registerAddItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_item",
		mcp.WithDescription("Add a todo or schedule on one date."),
		kindOption(),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Item text."),
		),
		mcp.WithString("color",
			mcp.Description("Hex color or 1-based palette index."),
		),
		mcp.WithString("time",
			mcp.Description("Schedule time such as 09:30 or 09:30-10:15."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Kind  string `json:"kind"`
			Date  string `json:"date"`
			Text  string `json:"text"`
			Color string `json:"color"`
			Time  string `json:"time"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddItem(ctx, AddItemOptions{
			Kind:  args.Kind,
			Date:  args.Date,
			Text:  args.Text,
			Color: args.Color,
			Time:  args.Time,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddPeriodTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_period",
		mcp.WithDescription("Add one grouped item per date of an inclusive date range."),
		kindOption(),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("First date as YYYY-MM-DD."),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Last date as YYYY-MM-DD."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Item text."),
		),
		mcp.WithString("color",
			mcp.Description("Hex color or 1-based palette index."),
		),
		mcp.WithString("time",
			mcp.Description("Schedule time such as 09:30 or 09:30-10:15."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Kind  string `json:"kind"`
			From  string `json:"from"`
			To    string `json:"to"`
			Text  string `json:"text"`
			Color string `json:"color"`
			Time  string `json:"time"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddPeriod(ctx, AddItemOptions{
			Kind:  args.Kind,
			From:  args.From,
			To:    args.To,
			Text:  args.Text,
			Color: args.Color,
			Time:  args.Time,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_day",
		mcp.WithDescription("List the schedules and todos of one date."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD."),
		),
		mcp.WithString("kind",
			mcp.Description("Limit the listing to one kind."),
			mcp.Enum("todo", "schedule"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Day(date, request.GetString("kind", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetPeriodsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_periods",
		mcp.WithDescription("Show the dates and collapsed ranges of the group an item belongs to."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Any item identifier of the group."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Periods(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerReshapeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reshape_period",
		mcp.WithDescription("Move a group onto a new set of date ranges, optionally updating color and time."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Any item identifier of the group."),
		),
		mcp.WithArray("ranges",
			mcp.Required(),
			mcp.Description("Ranges as START..END or a single YYYY-MM-DD."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("color",
			mcp.Description("New hex color or palette index. Empty clears it."),
		),
		mcp.WithString("time",
			mcp.Description("New schedule time. Empty clears it."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID     string   `json:"id"`
			Ranges []string `json:"ranges"`
			Color  *string  `json:"color"`
			Time   *string  `json:"time"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.Reshape(ctx, args.ID, args.Ranges, args.Color, args.Time)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_item",
		mcp.WithDescription("Delete one item, its whole group, or the group's items inside a range."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Item identifier."),
		),
		mcp.WithString("mode",
			mcp.Description("Deletion mode. Required when the item repeats."),
			mcp.Enum("single", "group", "range"),
		),
		mcp.WithString("range",
			mcp.Description("Range for range mode, START..END."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Delete(ctx, id, request.GetString("mode", ""), request.GetString("range", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_todo",
		mcp.WithDescription("Flip the completion state of a todo."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Todo identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Toggle(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
