package facade

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MensagemConexao is shown to the user whenever a call could not reach the backend
const MensagemConexao = "Erro de conexão com o servidor"

// ValidationError reports a missing or invalid input detected before any call is made
type ValidationError struct {
	Campo    string
	Mensagem string
}

func (e *ValidationError) Error() string {
	if e.Campo == "" {
		return e.Mensagem
	}
	return fmt.Sprintf("%s: %s", e.Campo, e.Mensagem)
}

// FacadeError reports a call that resolved with sucesso=false
type FacadeError struct {
	Operacao string
	Mensagem string
}

func (e *FacadeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operacao, e.Mensagem)
}

// TransportError reports a call that failed before a valid envelope came back
type TransportError struct {
	Operacao string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operacao, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Validar collects the non-empty messages into a single ValidationError
func Validar(problemas map[string]string) error {
	var campos []string
	for campo, msg := range problemas {
		if msg != "" {
			campos = append(campos, campo)
		}
	}
	if len(campos) == 0 {
		return nil
	}
	if len(campos) == 1 {
		return &ValidationError{Campo: campos[0], Mensagem: problemas[campos[0]]}
	}
	sort.Strings(campos)
	return &ValidationError{Mensagem: "campos obrigatórios não preenchidos: " + strings.Join(campos, ", ")}
}

// Mensagem converges any error into the message shown to the user
func Mensagem(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var fe *FacadeError
	if errors.As(err, &fe) {
		if fe.Mensagem == "" {
			return "Operação não concluída"
		}
		return fe.Mensagem
	}
	var te *TransportError
	if errors.As(err, &te) {
		return MensagemConexao
	}
	return err.Error()
}
