// Package daterange содержит вспомогательные функции для построения
// непрерывной последовательности календарных дат. Используется отчетами
// о продажах, чтобы дни без заказов не выпадали из результата.
package daterange

import (
	"time"
)

// DateLayout формат календарной даты, совпадает с ключом группировки в базе данных.
const DateLayout = "2006-01-02"

// Days возвращает все календарные даты от start до end включительно
// в формате DateLayout по возрастанию. Время внутри суток игнорируется.
// Если end раньше start, возвращается пустой срез.
func Days(start, end time.Time) []string {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	var days []string
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
