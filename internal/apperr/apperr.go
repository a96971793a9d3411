// Package apperr определяет закрытый набор ошибок бизнес-уровня.
//
// Каждая ошибка несёт тип (Kind) и сообщение; преобразование в HTTP-статусы
// выполняется только на границе, в обработчиках.
package apperr

import (
	"errors"
	"net/http"
)

// Kind тип ошибки бизнес-уровня.
type Kind int

const (
	// KindNotFound — запись не существует.
	KindNotFound Kind = iota
	// KindForbidden — запись принадлежит другому пользователю.
	KindForbidden
	// KindValidation — некорректные входные данные или нарушение ограничений хранилища.
	KindValidation
)

// Error ошибка бизнес-уровня с типом и сообщением.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// NotFound возвращает ошибку отсутствующей записи.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// Forbidden возвращает ошибку доступа к чужой записи.
func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Msg: msg} }

// Validation возвращает ошибку валидации.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

// HTTPStatus сопоставляет ошибку с HTTP-статусом и сообщением для клиента.
// Возвращает false, если ошибка не относится к закрытому набору — такие
// ошибки обработчики отдают как 500 с общим сообщением.
func HTTPStatus(err error) (int, string, bool) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return 0, "", false
	}
	switch appErr.Kind {
	case KindNotFound:
		return http.StatusNotFound, appErr.Msg, true
	case KindForbidden:
		return http.StatusForbidden, appErr.Msg, true
	case KindValidation:
		return http.StatusBadRequest, appErr.Msg, true
	}
	return 0, "", false
}
