package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-analytics-api/pkg/utils"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorKind classifica uma falha de chamada remota
type ErrorKind string

const (
	// ErrKindClient: erro 4xx, a requisição do chamador é inválida e nunca é repetida
	ErrKindClient ErrorKind = "client"
	// ErrKindServer: erro 5xx, transitório e elegível para retry
	ErrKindServer ErrorKind = "server"
	// ErrKindNetwork: falha de transporte (conexão, DNS), elegível para retry
	ErrKindNetwork ErrorKind = "network"
	// ErrKindTimeout: deadline da tentativa excedido, elegível para retry
	ErrKindTimeout ErrorKind = "timeout"
)

// Status sintético usado para timeouts, já que não há resposta HTTP real
const timeoutStatusCode = 408

// CallError é a falha normalizada entregue ao chamador quando as
// tentativas se esgotam ou a falha é terminal. StatusCode zero indica
// falha em nível de rede, sem resposta HTTP.
type CallError struct {
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Kind       ErrorKind `json:"kind"`

	// tokenExpired marca falhas terminais causadas por token de acesso
	// expirado (código OAuth 190), que permitem renovação e reemissão
	tokenExpired bool
}

func (e *CallError) Error() string {
	return e.Message
}

// Retryable indica se a falha é elegível para nova tentativa
func (e *CallError) Retryable() bool {
	return e.Kind != ErrKindClient
}

// RetryPolicy governa a resiliência de uma chamada lógica: deadline por
// tentativa, número de retries e atraso base do backoff linear.
type RetryPolicy struct {
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryPolicy retorna a política padrão do processo
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
	}
}

// rawResponse é o resultado bruto de uma única tentativa
type rawResponse struct {
	StatusCode int
	Body       []byte
}

// execute realiza uma chamada lógica com timeout por tentativa, classifica
// o resultado e repete conforme a política. O backoff é linear:
// BaseDelay * (tentativa + 1). Falhas 4xx são terminais e nunca repetidas;
// 5xx, falhas de rede e timeouts são repetidos até esgotar MaxRetries.
func execute(ctx context.Context, policy RetryPolicy, operation string, attempt func(ctx context.Context) (*rawResponse, error)) ([]byte, error) {
	callID, _ := utils.GenerateID()

	var lastErr *CallError

	for i := 0; i <= policy.MaxRetries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
		resp, err := attempt(attemptCtx)
		cancel()

		if err != nil {
			lastErr = classifyTransportError(err)
		} else if resp.StatusCode >= 200 && resp.StatusCode <= 399 {
			return resp.Body, nil
		} else {
			lastErr = buildCallError(resp)
		}

		if !lastErr.Retryable() {
			logrus.WithFields(logrus.Fields{
				"call_id":     callID,
				"operation":   operation,
				"status_code": lastErr.StatusCode,
				"kind":        lastErr.Kind,
				"error":       lastErr.Message,
			}).Error("meta: terminal failure, not retrying")

			return nil, lastErr
		}

		if i < policy.MaxRetries {
			delay := policy.BaseDelay * time.Duration(i+1)

			logrus.WithFields(logrus.Fields{
				"call_id":     callID,
				"operation":   operation,
				"attempt":     i + 1,
				"max_retries": policy.MaxRetries,
				"delay_ms":    delay.Milliseconds(),
				"status_code": lastErr.StatusCode,
				"kind":        lastErr.Kind,
				"error":       lastErr.Message,
			}).Warn("meta: retryable failure, scheduling retry")

			time.Sleep(delay)
		}
	}

	logrus.WithFields(logrus.Fields{
		"call_id":     callID,
		"operation":   operation,
		"attempts":    policy.MaxRetries + 1,
		"status_code": lastErr.StatusCode,
		"kind":        lastErr.Kind,
		"error":       lastErr.Message,
	}).Error("meta: retries exhausted")

	return nil, lastErr
}

// classifyTransportError distingue timeout de falha de rede genérica
func classifyTransportError(err error) *CallError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &CallError{
			Message:    fmt.Sprintf("deadline da requisição excedido: %v", err),
			StatusCode: timeoutStatusCode,
			Kind:       ErrKindTimeout,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &CallError{
			Message:    fmt.Sprintf("deadline da requisição excedido: %v", err),
			StatusCode: timeoutStatusCode,
			Kind:       ErrKindTimeout,
		}
	}

	return &CallError{
		Message:    fmt.Sprintf("falha de rede: %v", err),
		StatusCode: 0,
		Kind:       ErrKindNetwork,
	}
}

// buildCallError extrai o diagnóstico mais rico disponível da resposta:
// o envelope de erro da Graph API quando decodificável, senão o corpo cru.
func buildCallError(resp *rawResponse) *CallError {
	kind := ErrKindServer
	if resp.StatusCode >= 400 && resp.StatusCode <= 499 {
		kind = ErrKindClient
	}

	var envelope metadomain.ErrorResponse
	if err := json.Unmarshal(resp.Body, &envelope); err == nil {
		if msg := envelope.Diagnostic(); msg != "" {
			return &CallError{
				Message:      msg,
				StatusCode:   resp.StatusCode,
				Kind:         kind,
				tokenExpired: kind == ErrKindClient && envelope.IsTokenExpired(),
			}
		}
	}

	return &CallError{
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(resp.Body)),
		StatusCode: resp.StatusCode,
		Kind:       kind,
	}
}
