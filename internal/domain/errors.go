package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidKind        = errors.New("o tipo deve ser 'entry' ou 'exit'")
	ErrInvalidQuantity    = errors.New("a quantidade deve ser maior que zero")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrInsufficientStock  = errors.New("estoque insuficiente")
)

// InsufficientStockError carrega o estoque atual do produto para diagnóstico
// do chamador. errors.Is(err, ErrInsufficientStock) segue funcionando via Unwrap.
type InsufficientStockError struct {
	Current int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente. Estoque atual: %d", e.Current)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
