package api

type Request struct {
	Code string `json:"code"`

	// Format is optional; a missing or null value means png.
	Format *string `json:"format,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	Format     string `json:"format,omitempty"`
	Base64Data string `json:"base64Data,omitempty"`
}
