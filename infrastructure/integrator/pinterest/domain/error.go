package pinterestdomain

// ErrorResponse representa o corpo de erro da API do Pinterest
type ErrorResponse struct {
	Code             int    `json:"code"`
	Message          string `json:"message"`
	OAuthError       string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ParseErrorMessage extrai a mensagem legível do corpo de erro, se houver
func ParseErrorMessage(body []byte) string {
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}

	switch {
	case resp.Message != "":
		return resp.Message
	case resp.ErrorDescription != "":
		return resp.ErrorDescription
	}
	return resp.OAuthError
}
