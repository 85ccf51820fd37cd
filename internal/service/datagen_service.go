package service

import (
	"context"
	"sync"
	"time"

	"ai-usecase-explorer-be/internal/dto"
	"ai-usecase-explorer-be/internal/pkg/logger"
	"ai-usecase-explorer-be/internal/repository/prefs"
	"ai-usecase-explorer-be/pkg/apperror"
	"ai-usecase-explorer-be/pkg/datagen"
)

type IDataGenService interface {
	Generate(ctx context.Context, request *dto.GenerateDataRequest) (*dto.GenerateDataResponse, error)
	LastResult(ctx context.Context) (filename string, rawText string, err error)
	SaveInputs(ctx context.Context, request *dto.GeneratorInputsDTO) error
	LoadInputs(ctx context.Context) (*dto.GeneratorInputsDTO, error)
}

type dataGenService struct {
	pipeline *datagen.Pipeline
	prefs    *prefs.Store
	logger   logger.ILogger

	mu           sync.Mutex
	lastRaw      string
	lastFilename string
}

func NewDataGenService(pipeline *datagen.Pipeline, prefsStore *prefs.Store, sysLogger logger.ILogger) IDataGenService {
	return &dataGenService{
		pipeline: pipeline,
		prefs:    prefsStore,
		logger:   sysLogger,
	}
}

func (s *dataGenService) Generate(ctx context.Context, request *dto.GenerateDataRequest) (*dto.GenerateDataResponse, error) {
	rawText, err := s.pipeline.Generate(ctx, request.SystemPrompt, request.Rows, request.Columns)
	if err != nil {
		s.logger.Error("DataGen", "Generation failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	filename := datagen.DownloadFilename(time.Now())

	s.mu.Lock()
	s.lastRaw = rawText
	s.lastFilename = filename
	s.mu.Unlock()

	// Remember the inputs for the next page load. Best effort only.
	if err := s.prefs.Save(ctx, prefs.GeneratorInputs{
		Prompt:  request.SystemPrompt,
		Rows:    request.Rows,
		Columns: request.Columns,
	}); err != nil {
		s.logger.Warn("DataGen", "Failed to persist generator inputs", map[string]interface{}{"error": err.Error()})
	}

	return &dto.GenerateDataResponse{
		RawText:  rawText,
		Preview:  s.pipeline.Preview(rawText),
		Filename: filename,
	}, nil
}

// LastResult serves the download. The raw cleaned text is authoritative;
// the parsed preview is never re-rendered into the file.
func (s *dataGenService) LastResult(ctx context.Context) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRaw == "" {
		return "", "", apperror.NewValidation("no generated dataset to download")
	}
	return s.lastFilename, s.lastRaw, nil
}

func (s *dataGenService) SaveInputs(ctx context.Context, request *dto.GeneratorInputsDTO) error {
	if err := s.prefs.Save(ctx, prefs.GeneratorInputs{
		Prompt:  request.Prompt,
		Rows:    request.Rows,
		Columns: request.Columns,
	}); err != nil {
		s.logger.Warn("DataGen", "Failed to persist generator inputs", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (s *dataGenService) LoadInputs(ctx context.Context) (*dto.GeneratorInputsDTO, error) {
	inputs, err := s.prefs.Load(ctx)
	if err != nil {
		s.logger.Warn("DataGen", "Failed to load generator inputs", map[string]interface{}{"error": err.Error()})
		return &dto.GeneratorInputsDTO{}, nil
	}
	return &dto.GeneratorInputsDTO{
		Prompt:  inputs.Prompt,
		Rows:    inputs.Rows,
		Columns: inputs.Columns,
	}, nil
}
