// Package models содержит доменные структуры, описывающие подписку,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// DateLayout формат календарной даты в запросах и ответах API.
const DateLayout = "2006-01-02"

// Subscription представляет собой запись подписки в том виде, в котором
// она отдаётся клиенту (camelCase поля). Хранилище работает с теми же
// полями в snake_case колонках. Поля StartDate и RenewalDate могут быть
// nil — дата не задана.
type Subscription struct {
	ID            string     `json:"id"`            // Уникальный идентификатор записи
	UserID        string     `json:"userId"`        // Идентификатор владельца
	Name          string     `json:"name"`          // Название подписки
	Company       string     `json:"company"`       // Компания-поставщик
	Price         float64    `json:"price"`         // Цена, неотрицательная
	Currency      string     `json:"currency"`      // Валюта (USD, EUR, ...)
	Details       *string    `json:"details"`       // Свободный комментарий
	Frequency     *string    `json:"frequency"`     // Периодичность продления
	Category      string     `json:"category"`      // Категория
	PaymentMethod string     `json:"paymentMethod"` // Способ оплаты
	Status        string     `json:"status"`        // active, cancelled или expired
	StartDate     *time.Time `json:"startDate"`     // Дата начала
	RenewalDate   *time.Time `json:"renewalDate"`   // Дата продления
	CreatedAt     time.Time  `json:"createdAt"`     // Момент создания (назначает сервер)
	UpdatedAt     time.Time  `json:"updatedAt"`     // Момент последнего изменения
}

// DummyEntry используется для приёма данных из JSON-запроса на создание
// подписки, прежде чем конвертировать их в Subscription. Даты приходят
// в виде строк и парсятся на уровне сервиса; нераспарсенная дата — это
// ошибка валидации.
type DummyEntry struct {
	Name          string   `json:"name" validate:"required"`
	Company       string   `json:"company" validate:"required"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Currency      string   `json:"currency" validate:"omitempty,oneof=USD EUR GBP BDT INR"`
	Details       string   `json:"details" validate:"omitempty,max=1000"`
	Frequency     string   `json:"frequency" validate:"omitempty,oneof=daily weekly monthly yearly"`
	Category      string   `json:"category" validate:"required"`
	PaymentMethod string   `json:"paymentMethod" validate:"required"`
	Status        string   `json:"status" validate:"omitempty,oneof=active cancelled expired"`
	StartDate     string   `json:"startDate"`
	RenewalDate   string   `json:"renewalDate"`
}

// DummyUpdateEntry используется для приёма частичного обновления подписки.
// Все поля опциональны; nil означает "не менять". Набор полей фиксирован —
// неизвестные поля входного JSON молча игнорируются, это не ошибка.
type DummyUpdateEntry struct {
	Name          *string  `json:"name"`
	Company       *string  `json:"company"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Currency      *string  `json:"currency" validate:"omitempty,oneof=USD EUR GBP BDT INR"`
	Details       *string  `json:"details" validate:"omitempty,max=1000"`
	Frequency     *string  `json:"frequency" validate:"omitempty,oneof=daily weekly monthly yearly"`
	Category      *string  `json:"category"`
	PaymentMethod *string  `json:"paymentMethod" validate:"omitempty"`
	Status        *string  `json:"status" validate:"omitempty,oneof=active cancelled expired"`
	StartDate     *string  `json:"startDate"`
	RenewalDate   *string  `json:"renewalDate"`
}
