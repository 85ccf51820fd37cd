package dto

type ResolveRequest struct {
	SelectedKey string `json:"selected_key"`
	CustomLabel string `json:"custom_label"`
}

type UseCaseDTO struct {
	Label          string `json:"label"`
	HasExplanation bool   `json:"has_explanation"`
}

type DocumentResponse struct {
	Name     string                  `json:"name"`
	Kind     string                  `json:"kind"`
	Steps    []string                `json:"steps"`
	UseCases map[string][]UseCaseDTO `json:"use_cases"`
}

type CatalogResponse struct {
	Keys []string `json:"keys"`
}

type OpenUseCaseRequest struct {
	Step  string `json:"step" validate:"required"`
	Label string `json:"label" validate:"required"`
	Index int    `json:"index" validate:"gte=0"`
}

type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ConversationResponse struct {
	Status   string       `json:"status"` // LOADING | READY
	Messages []MessageDTO `json:"messages"`
}

type ChatRequest struct {
	Step    string `json:"step" validate:"required"`
	Label   string `json:"label" validate:"required"`
	Index   int    `json:"index" validate:"gte=0"`
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Reply MessageDTO `json:"reply"`
}
