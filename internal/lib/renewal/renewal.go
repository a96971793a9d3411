// Package renewal содержит чистые функции расчёта даты продления
// и определения статуса подписки. Функции детерминированы и не имеют
// побочных эффектов.
package renewal

import "time"

// Статусы подписки.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// frequencyDays задаёт шаг продления в календарных днях для каждой периодичности.
var frequencyDays = map[string]int{
	"daily":   1,
	"weekly":  7,
	"monthly": 30,
	"yearly":  365,
}

// FrequencyDays возвращает количество календарных дней для периодичности.
// Второе значение false для пустой или неизвестной периодичности.
func FrequencyDays(frequency string) (int, bool) {
	days, ok := frequencyDays[frequency]
	return days, ok
}

// ComputeRenewalDate возвращает дату продления: startDate плюс шаг периодичности
// в календарных днях. Прибавление календарное, с переходом через границы
// месяца и года. Возвращает nil, если периодичность пустая или неизвестная.
func ComputeRenewalDate(startDate time.Time, frequency string) *time.Time {
	days, ok := frequencyDays[frequency]
	if !ok {
		return nil
	}
	d := Day(startDate).AddDate(0, 0, days)
	return &d
}

// ResolveStatus возвращает итоговый статус подписки на момент now.
// Если дата продления существует и строго раньше текущей календарной даты,
// статус принудительно expired независимо от requested. Пустой requested
// считается active.
func ResolveStatus(renewalDate *time.Time, requested string, now time.Time) string {
	if renewalDate != nil && Day(*renewalDate).Before(Day(now)) {
		return StatusExpired
	}
	if requested == "" {
		return StatusActive
	}
	return requested
}

// Day нормализует момент времени до календарной даты в UTC,
// без компонента времени суток.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
