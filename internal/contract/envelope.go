package contract

// Envelope is the uniform response body shared by every endpoint:
// {"status": bool, "message": string, "data"?: any}.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func OK(message string, data any) *Envelope {
	return &Envelope{Status: true, Message: message, Data: data}
}
