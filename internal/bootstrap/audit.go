package bootstrap

import "context"

// AuditLog records a lifecycle action of the process itself.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
