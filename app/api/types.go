package api

import (
	"context"

	"github.com/lukashev/linkstash/app/database"
	"github.com/lukashev/linkstash/app/ingest"
)

type OrchestratorInterface interface {
	Run(ctx context.Context, req ingest.Request, sink ingest.Sink) (*database.Link, error)
}

type ConfirmerInterface interface {
	Confirm(id string, edits ingest.Edits) (*database.Link, error)
}

type CategoryCacheInterface interface {
	Names() []string
	Count() int
}

var _ OrchestratorInterface = (*ingest.Orchestrator)(nil)
var _ ConfirmerInterface = (*ingest.Confirmer)(nil)

type Handler struct {
	orchestrator  OrchestratorInterface
	confirmer     ConfirmerInterface
	linkRepo      database.LinkRepository
	categoryCache CategoryCacheInterface
}
