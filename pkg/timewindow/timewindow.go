package timewindow

import "time"

// Пакет timewindow нормализует произвольные моменты времени к границам
// окон приезда фиксированной длины. Все окна выровнены относительно
// общей эпохи (Unix epoch), поэтому квантование детерминировано и не
// зависит от точности таймстемпа вызывающей стороны.

// DefaultWindowMinutes длина окна приезда по умолчанию
// Используется везде, где размер окна не задан или задан некорректно (<= 0)
const DefaultWindowMinutes = 30

// Quantize возвращает начало окна, содержащего момент t
//
// Вычисляет целое число минут между t и эпохой, делит нацело на размер
// окна (с округлением вниз, в том числе для дат до эпохи) и возвращает
// границу окна в той же локации, что и t.
//
// Гарантии:
//   - идемпотентность: Quantize(Quantize(t, m), m) == Quantize(t, m)
//   - вложенность: Quantize(t, m) <= t < Quantize(t, m) + m минут
//
// windowMinutes <= 0 трактуется как DefaultWindowMinutes
func Quantize(t time.Time, windowMinutes int) time.Time {
	if windowMinutes <= 0 {
		windowMinutes = DefaultWindowMinutes
	}

	windowSeconds := int64(windowMinutes) * 60
	sec := t.Unix()

	// Округление вниз, корректное и для отрицательных Unix-секунд
	rem := sec % windowSeconds
	if rem < 0 {
		rem += windowSeconds
	}

	return time.Unix(sec-rem, 0).In(t.Location())
}

// Range возвращает границы окна, содержащего момент t: [start, end),
// где end = start + windowMinutes
func Range(t time.Time, windowMinutes int) (start, end time.Time) {
	if windowMinutes <= 0 {
		windowMinutes = DefaultWindowMinutes
	}
	start = Quantize(t, windowMinutes)
	end = start.Add(time.Duration(windowMinutes) * time.Minute)
	return start, end
}

// IsAligned возвращает true, если t уже является границей окна
func IsAligned(t time.Time, windowMinutes int) bool {
	return Quantize(t, windowMinutes).Equal(t)
}
