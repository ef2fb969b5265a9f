package report

import "time"

// UnknownDay — сентинел для отсутствующей или нераспознанной даты.
// Записи с таким ключом не попадают ни в один датированный диапазон.
const UnknownDay int64 = -1 << 62

const dayMillis = 24 * 60 * 60 * 1000

// LocalDayKey нормализует дату к локальной полуночи и возвращает
// канонический ключ дня в миллисекундах Unix.
func LocalDayKey(t *time.Time) int64 {
	if t == nil || t.IsZero() {
		return UnknownDay
	}

	year, month, day := t.Local().Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return midnight.UnixMilli()
}

// MonthKey возвращает ключ месяца в формате YYYY-MM по локальному времени.
// Лексикографическая сортировка таких ключей совпадает с хронологической.
func MonthKey(t time.Time) string {
	return t.Local().Format("2006-01")
}

// MonthRange возвращает первый и последний календарный день месяца даты t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	year, month, _ := t.Local().Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// DaysBetween считает количество дней от a до b, округляя вверх.
// Результат может быть отрицательным при b < a; вызывающие стороны
// ограничивают его max(1, ...) там, где он используется как делитель.
func DaysBetween(a, b time.Time) int {
	diff := b.UnixMilli() - a.UnixMilli()
	if diff >= 0 {
		return int((diff + dayMillis - 1) / dayMillis)
	}
	return -int((-diff + dayMillis - 1) / dayMillis)
}

// withinDayRange проверяет попадание дня в диапазон [from, to]
// с точностью до локального дня, включая обе границы.
func withinDayRange(day int64, from, to time.Time) bool {
	if day == UnknownDay {
		return false
	}
	return day >= LocalDayKey(&from) && day <= LocalDayKey(&to)
}
