package service

import (
	"context"

	"ai-usecase-explorer-be/internal/dto"
	"ai-usecase-explorer-be/internal/pkg/logger"
	"ai-usecase-explorer-be/pkg/apperror"
	"ai-usecase-explorer-be/pkg/events"
	"ai-usecase-explorer-be/pkg/explorer"
	"ai-usecase-explorer-be/pkg/llm"
	"ai-usecase-explorer-be/pkg/valuechain"
)

// IExplorerService defines the value-chain explorer operations the
// controllers call into. The UI collaborator renders whatever these
// return; no presentation concerns live here.
type IExplorerService interface {
	Catalog(ctx context.Context) *dto.CatalogResponse
	Resolve(ctx context.Context, request *dto.ResolveRequest) (*dto.DocumentResponse, error)
	Back(ctx context.Context) error
	Export(ctx context.Context) (filename string, blob []byte, err error)
	Import(ctx context.Context, blob []byte) (*dto.DocumentResponse, error)
	OpenUseCase(ctx context.Context, request *dto.OpenUseCaseRequest) (*dto.ConversationResponse, error)
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
}

type explorerService struct {
	catalog   *valuechain.Catalog
	resolver  *valuechain.Resolver
	state     *explorer.State
	manager   *explorer.Manager
	publisher events.Publisher
	logger    logger.ILogger
}

func NewExplorerService(
	catalog *valuechain.Catalog,
	resolver *valuechain.Resolver,
	state *explorer.State,
	manager *explorer.Manager,
	publisher events.Publisher,
	sysLogger logger.ILogger,
) IExplorerService {
	return &explorerService{
		catalog:   catalog,
		resolver:  resolver,
		state:     state,
		manager:   manager,
		publisher: publisher,
		logger:    sysLogger,
	}
}

func (s *explorerService) Catalog(ctx context.Context) *dto.CatalogResponse {
	return &dto.CatalogResponse{Keys: s.catalog.Keys()}
}

// Resolve activates a document for the selection: a catalog hit is used
// as-is, anything else goes through generation. A generation parse
// failure propagates so the UI can roll back to the selection screen.
func (s *explorerService) Resolve(ctx context.Context, request *dto.ResolveRequest) (*dto.DocumentResponse, error) {
	doc, err := s.resolver.Resolve(ctx, request.SelectedKey, request.CustomLabel)
	if err != nil {
		s.logger.Error("Explorer", "Value chain resolution failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.state.SetDocument(doc)
	s.logger.Info("Explorer", "Value chain activated", map[string]interface{}{"name": doc.Name, "kind": doc.Kind})
	return mapDocument(doc), nil
}

func (s *explorerService) Back(ctx context.Context) error {
	s.state.Reset()
	_ = s.publisher.Publish(events.NewStateReset())
	return nil
}

func (s *explorerService) Export(ctx context.Context) (string, []byte, error) {
	doc, sessions := s.state.Snapshot()
	if doc == nil {
		return "", nil, apperror.NewValidation("no configuration to export")
	}

	blob, err := valuechain.Export(doc, sessions)
	if err != nil {
		return "", nil, err
	}
	return doc.ExportFilename(), blob, nil
}

// Import replaces the whole state from an uploaded configuration. On a
// parse failure the prior state is left untouched.
func (s *explorerService) Import(ctx context.Context, blob []byte) (*dto.DocumentResponse, error) {
	doc, sessions, err := valuechain.Import(blob)
	if err != nil {
		return nil, err
	}

	s.state.Hydrate(doc, sessions)
	s.logger.Info("Explorer", "Configuration imported", map[string]interface{}{"name": doc.Name, "sessions": len(sessions)})
	return mapDocument(doc), nil
}

func (s *explorerService) OpenUseCase(ctx context.Context, request *dto.OpenUseCaseRequest) (*dto.ConversationResponse, error) {
	id := explorer.UseCaseID{Step: request.Step, Label: request.Label, Index: request.Index}
	messages, status, err := s.manager.Open(id)
	if err != nil {
		return nil, err
	}
	return &dto.ConversationResponse{Status: status, Messages: mapMessages(messages)}, nil
}

func (s *explorerService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	id := explorer.UseCaseID{Step: request.Step, Label: request.Label, Index: request.Index}
	reply, err := s.manager.SendTurn(ctx, id, request.Message)
	if err != nil {
		return nil, err
	}
	return &dto.ChatResponse{Reply: dto.MessageDTO{Role: reply.Role, Content: reply.Content}}, nil
}

func mapDocument(doc *valuechain.Document) *dto.DocumentResponse {
	useCases := make(map[string][]dto.UseCaseDTO, len(doc.UseCases))
	for step, entries := range doc.UseCases {
		mapped := make([]dto.UseCaseDTO, 0, len(entries))
		for _, entry := range entries {
			mapped = append(mapped, dto.UseCaseDTO{
				Label:          entry.Label,
				HasExplanation: entry.Explanation != "",
			})
		}
		useCases[step] = mapped
	}
	return &dto.DocumentResponse{
		Name:     doc.Name,
		Kind:     doc.Kind,
		Steps:    doc.Steps,
		UseCases: useCases,
	}
}

func mapMessages(messages []llm.Message) []dto.MessageDTO {
	out := make([]dto.MessageDTO, 0, len(messages))
	for _, msg := range messages {
		out = append(out, dto.MessageDTO{Role: msg.Role, Content: msg.Content})
	}
	return out
}
