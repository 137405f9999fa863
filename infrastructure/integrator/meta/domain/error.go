package metadomain

import "fmt"

// ErrorResponse representa o envelope de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	ErrorUserMsg string      `json:"error_user_msg,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsTokenExpired verifica se o erro é de token expirado.
// O código 190 representa "token expirado"; os subcódigos 460, 463 e 467
// também indicam problemas com o token.
func (e *ErrorResponse) IsTokenExpired() bool {
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// Diagnostic monta a mensagem mais rica possível a partir do envelope:
// mensagem principal, mensagem para o usuário e subcódigo quando presentes.
func (e *ErrorResponse) Diagnostic() string {
	if e.Error.Message == "" {
		return ""
	}

	msg := e.Error.Message

	if e.Error.ErrorUserMsg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Error.ErrorUserMsg)
	}

	if e.Error.ErrorSubcode != 0 {
		msg = fmt.Sprintf("%s (subcode %d)", msg, e.Error.ErrorSubcode)
	}

	return msg
}
