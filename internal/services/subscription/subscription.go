// Package services содержит бизнес-логику для управления подписками:
// проверку владельца, вывод вычисляемых полей и частичное обновление
// по фиксированному набору полей.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/apperr"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/renewal"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает созданную запись.
	CreateSubscription(ctx context.Context, entry models.Subscription) (*models.Subscription, error)
	// ReadSubscription возвращает подписку по ID, (nil, nil) — если записи нет.
	ReadSubscription(ctx context.Context, id string) (*models.Subscription, error)
	// ListSubscriptions возвращает все подписки пользователя, по дате продления,
	// записи без даты — последними.
	ListSubscriptions(ctx context.Context, userID string) ([]*models.Subscription, error)
	// ListReminders возвращает активные подписки с продлением в ближайшие 5 дней.
	ListReminders(ctx context.Context, userID string) ([]*models.Subscription, error)
	// UpdateSubscription применяет частичное обновление, (nil, nil) — если записи нет.
	UpdateSubscription(ctx context.Context, id string, fields map[string]any) (*models.Subscription, error)
	// RemoveSubscription удаляет подписку и возвращает количество удалённых строк.
	RemoveSubscription(ctx context.Context, id string) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками, включая кеширование
// одиночных чтений. Каждая операция над конкретной записью требует идентификатор
// вызывающего пользователя: сначала проверяется существование записи, затем владелец.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую подписку для пользователя и возвращает созданную запись.
// Если дата продления не задана, она выводится из даты начала и периодичности.
// Если итоговая дата продления строго раньше текущей даты, статус принудительно
// expired независимо от запрошенного. Это правило действует только при создании.
func (s *SubscriptionService) Create(ctx context.Context, userID string, req models.DummyEntry) (*models.Subscription, error) {
	var startDate *time.Time
	if req.StartDate != "" {
		d, err := time.Parse(models.DateLayout, req.StartDate)
		if err != nil {
			return nil, apperr.Validation("invalid start date")
		}
		day := renewal.Day(d)
		startDate = &day
	}

	var renewalDate *time.Time
	switch {
	case req.RenewalDate != "":
		d, err := time.Parse(models.DateLayout, req.RenewalDate)
		if err != nil {
			return nil, apperr.Validation("invalid renewal date")
		}
		day := renewal.Day(d)
		renewalDate = &day
	case startDate != nil:
		renewalDate = renewal.ComputeRenewalDate(*startDate, req.Frequency)
	}

	status := renewal.ResolveStatus(renewalDate, req.Status, time.Now().UTC())

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	entry := models.Subscription{
		UserID:        userID,
		Name:          req.Name,
		Company:       req.Company,
		Price:         *req.Price,
		Currency:      currency,
		Details:       optional(req.Details),
		Frequency:     optional(req.Frequency),
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
		StartDate:     startDate,
		RenewalDate:   renewalDate,
	}

	created, err := s.repo.CreateSubscription(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new subscription", slog.String("id", created.ID))

	s.cacheSet(created)
	return created, nil
}

// Read возвращает подписку по ID. Возвращает NotFound, если записи не существует,
// и Forbidden, если запись принадлежит другому пользователю. Проверка владельца
// выполняется только после подтверждения существования.
func (s *SubscriptionService) Read(ctx context.Context, id, userID string) (*models.Subscription, error) {
	cacheKey := fmt.Sprintf("subscription:%s", id)
	var cached models.Subscription
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && err == nil {
		if cached.UserID != userID {
			return nil, apperr.Forbidden("you are not the owner")
		}
		return &cached, nil
	}

	result, err := s.repo.ReadSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apperr.NotFound("subscription not found")
	}
	if result.UserID != userID {
		return nil, apperr.Forbidden("you are not the owner")
	}

	s.cacheSet(result)
	return result, nil
}

// List возвращает все подписки пользователя, отсортированные по дате продления
// по возрастанию; записи без даты продления — в конце.
func (s *SubscriptionService) List(ctx context.Context, userID string) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx, userID)
}

// ListReminders возвращает активные подписки пользователя с датой продления
// в пределах пяти дней от сегодняшней включительно. Выборка опирается на
// сохранённый статус и не пересчитывает его.
func (s *SubscriptionService) ListReminders(ctx context.Context, userID string) ([]*models.Subscription, error) {
	return s.repo.ListReminders(ctx, userID)
}

// Update применяет частичное обновление подписки. Проверки существования и
// владельца те же, что и у Read. Обновляются только поля из фиксированного
// набора; если ни одно распознанное поле не задано, возвращается текущее
// состояние без изменений. Явно заданный статус сохраняется как есть.
func (s *SubscriptionService) Update(ctx context.Context, id, userID string, req models.DummyUpdateEntry) (*models.Subscription, error) {
	current, err := s.repo.ReadSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperr.NotFound("subscription not found")
	}
	if current.UserID != userID {
		return nil, apperr.Forbidden("you are not the owner")
	}

	fields, err := updateFields(req)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return current, nil
	}

	updated, err := s.repo.UpdateSubscription(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("subscription not found")
	}
	s.log.Info("updated subscription", slog.String("id", id))

	s.cacheSet(updated)
	return updated, nil
}

// Remove удаляет подписку. Проверки существования и владельца те же, что и у Read.
// Возвращает, была ли строка действительно удалена.
func (s *SubscriptionService) Remove(ctx context.Context, id, userID string) (bool, error) {
	current, err := s.repo.ReadSubscription(ctx, id)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, apperr.NotFound("subscription not found")
	}
	if current.UserID != userID {
		return false, apperr.Forbidden("you are not the owner")
	}

	count, err := s.repo.RemoveSubscription(ctx, id)
	if err != nil {
		return false, err
	}

	cacheKey := fmt.Sprintf("subscription:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return count > 0, nil
}

func (s *SubscriptionService) cacheSet(sub *models.Subscription) {
	cacheKey := fmt.Sprintf("subscription:%s", sub.ID)
	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), slog.Any("err", err))
	}
}

// updateFields собирает snake_case колонки для частичного обновления из
// фиксированного набора изменяемых полей. Даты нормализуются до календарной
// даты без компонента времени суток.
func updateFields(req models.DummyUpdateEntry) (map[string]any, error) {
	fields := make(map[string]any)
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.Details != nil {
		fields["details"] = *req.Details
	}
	if req.Frequency != nil {
		fields["frequency"] = *req.Frequency
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.PaymentMethod != nil {
		fields["payment_method"] = *req.PaymentMethod
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.StartDate != nil {
		d, err := time.Parse(models.DateLayout, *req.StartDate)
		if err != nil {
			return nil, apperr.Validation("invalid start date")
		}
		fields["start_date"] = renewal.Day(d)
	}
	if req.RenewalDate != nil {
		d, err := time.Parse(models.DateLayout, *req.RenewalDate)
		if err != nil {
			return nil, apperr.Validation("invalid renewal date")
		}
		fields["renewal_date"] = renewal.Day(d)
	}
	return fields, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
