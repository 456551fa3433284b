package valueobject

import "time"

// DateLayout формат календарного дня в API и источниках данных
const DateLayout = "2006-01-02"

// DateRange представляет включающий диапазон календарных дней (Value Object)
// Иммутабельный объект. Диапазон с start > end допустим и считается пустым.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange создает новый DateRange, время суток отбрасывается
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() {
		return DateRange{}, NewValidationError("start", "a non-zero date", start.Format(DateLayout))
	}
	if end.IsZero() {
		return DateRange{}, NewValidationError("end", "a non-zero date", end.Format(DateLayout))
	}

	return DateRange{
		start: TruncateDay(start),
		end:   TruncateDay(end),
	}, nil
}

// ParseDateRange разбирает границы в формате YYYY-MM-DD
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, NewValidationError("start", "a date in YYYY-MM-DD format", start)
	}

	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, NewValidationError("end", "a date in YYYY-MM-DD format", end)
	}

	return NewDateRange(s, e)
}

// Start возвращает первый день диапазона
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End возвращает последний день диапазона
func (dr DateRange) End() time.Time {
	return dr.end
}

// IsEmpty сообщает, что диапазон не содержит ни одного дня
func (dr DateRange) IsEmpty() bool {
	return dr.start.After(dr.end)
}

// Days возвращает количество дней в диапазоне
func (dr DateRange) Days() int {
	if dr.IsEmpty() {
		return 0
	}
	return int(dr.end.Sub(dr.start).Hours()/24) + 1
}

// Contains проверяет, попадает ли день в диапазон (границы включаются)
func (dr DateRange) Contains(t time.Time) bool {
	day := TruncateDay(t)
	return !day.Before(dr.start) && !day.After(dr.end)
}

// String возвращает диапазон в формате start..end
func (dr DateRange) String() string {
	return dr.start.Format(DateLayout) + ".." + dr.end.Format(DateLayout)
}

// TruncateDay приводит время к началу календарного дня в UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
