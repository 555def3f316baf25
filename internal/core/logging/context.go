package logging

import "context"

type contextKey string

const (
	mapPathKey contextKey = "map_path"
	commandKey contextKey = "command"
)

// WithMapPath adds the path of the map being edited to the context.
func WithMapPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, mapPathKey, path)
}

// WithCommand adds the name of the running CLI command to the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// GetMapPath retrieves the map path from the context.
// Returns empty string if not present.
func GetMapPath(ctx context.Context) string {
	if p, ok := ctx.Value(mapPathKey).(string); ok {
		return p
	}
	return ""
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}
