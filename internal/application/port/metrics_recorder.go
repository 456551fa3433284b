package port

// MetricsRecorder принимает операционные метрики приложения (Port)
// Реализация: infrastructure/metrics (prometheus)
type MetricsRecorder interface {
	// CacheHit и CacheMiss отмечают обращения к кешу снимков по имени набора данных
	CacheHit(dataset string)
	CacheMiss(dataset string)

	// CacheRefresh отмечает завершенную загрузку снимка
	CacheRefresh(dataset string, err error)

	// RecordsSkipped отмечает записи источника, не прошедшие валидацию
	RecordsSkipped(dataset string, count int)

	// FleetStatus выставляет количество машин в каждом статусе
	FleetStatus(counts map[string]int)

	// EventPublished отмечает публикацию события в брокер
	EventPublished(subject string, err error)
}

// NopMetricsRecorder реализация, которая ничего не делает
type NopMetricsRecorder struct{}

func (NopMetricsRecorder) CacheHit(string) {}
func (NopMetricsRecorder) CacheMiss(string) {}
func (NopMetricsRecorder) CacheRefresh(string, error) {}
func (NopMetricsRecorder) RecordsSkipped(string, int) {}
func (NopMetricsRecorder) FleetStatus(map[string]int) {}
func (NopMetricsRecorder) EventPublished(string, error) {}
