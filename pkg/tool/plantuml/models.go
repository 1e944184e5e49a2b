package plantuml

type GenerateResult struct {
	Success bool `json:"success"`

	Format  string `json:"format,omitempty"`
	Message string `json:"message,omitempty"`
	Size    string `json:"size,omitempty"`

	Data string `json:"data,omitempty"`
	Note string `json:"note,omitempty"`

	FileSave string `json:"file_save,omitempty"`

	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type FormatsResult struct {
	Formats []string `json:"formats"`
	Default string   `json:"default"`

	Recommendations map[string]string `json:"recommendations"`
}

type HealthResult struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message"`

	ServerURL string `json:"server_url"`
	Status    string `json:"status"`
}
