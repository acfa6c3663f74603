// Package database provides the data access layer.
package database

import (
	"context"

	"github.com/notaryai/notaryd/internal/models"
)

// Store defines the interface for data persistence. The activity log is
// append-only: records are created once and listed, never updated.
type Store interface {
	// Activity log
	AppendActivity(ctx context.Context, activity *models.Activity) error
	ListActivities(ctx context.Context, limit, offset int) ([]*models.Activity, error)

	// Audit logs
	LogRequest(ctx context.Context, log *models.AuditLog) error
	GetAuditLogs(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)

	// Lifecycle
	Close() error
	Migrate() error
}
