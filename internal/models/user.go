// Package models содержит доменную модель пользователя системы.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Хэш пароля никогда не сериализуется в ответы API.
type User struct {
	ID           string    `json:"id"`        // Уникальный идентификатор пользователя
	Name         string    `json:"name"`      // Имя пользователя
	Email        string    `json:"email"`     // Электронная почта, уникальная без учёта регистра
	PasswordHash string    `json:"-"`         // Хэш пароля
	CreatedAt    time.Time `json:"createdAt"` // Момент создания
	UpdatedAt    time.Time `json:"updatedAt"` // Момент последнего изменения
}
