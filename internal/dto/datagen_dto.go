package dto

type GenerateDataRequest struct {
	SystemPrompt string `json:"system_prompt"`
	Rows         string `json:"rows" validate:"required"`
	Columns      string `json:"columns" validate:"required"`
}

type GenerateDataResponse struct {
	RawText  string     `json:"raw_text"`
	Preview  [][]string `json:"preview"`
	Filename string     `json:"filename"`
}

type GeneratorInputsDTO struct {
	Prompt  string `json:"prompt"`
	Rows    string `json:"rows"`
	Columns string `json:"columns"`
}
