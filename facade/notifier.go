package facade

import "go.uber.org/zap"

// Notifier is the user-facing notification path. Every failed call ends up
// in Erro with the message produced by Mensagem.
type Notifier interface {
	Sucesso(mensagem string)
	Erro(mensagem string)
}

// LogNotifier writes notifications to the global zap logger
type LogNotifier struct{}

// Sucesso logs a success notification
func (LogNotifier) Sucesso(mensagem string) {
	zap.S().Infow("notificação", "tipo", "sucesso", "mensagem", mensagem)
}

// Erro logs an error notification
func (LogNotifier) Erro(mensagem string) {
	zap.S().Warnw("notificação", "tipo", "erro", "mensagem", mensagem)
}

// Notify reports err through n and returns it unchanged
func Notify(n Notifier, err error) error {
	if err != nil && n != nil {
		n.Erro(Mensagem(err))
	}
	return err
}
