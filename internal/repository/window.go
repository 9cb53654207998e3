package repository

import "time"

// ReminderWindow окно времени, в котором урок считается "скоро начнётся".
// Нижняя граница исключается (урок ещё не начался), верхняя включается:
// урок ровно через lookahead минут попадает в окно.
type ReminderWindow struct {
	From time.Time // Исключительно
	To   time.Time // Включительно
}

// ComputeWindow строит окно напоминаний от текущего момента
func ComputeWindow(now time.Time, lookahead time.Duration) ReminderWindow {
	return ReminderWindow{
		From: now,
		To:   now.Add(lookahead),
	}
}

// Contains проверяет попадает ли момент начала урока в окно
func (w ReminderWindow) Contains(start time.Time) bool {
	return start.After(w.From) && !start.After(w.To)
}
