package dto

import "time"

// HistogramDTO гистограмма оценок состояния по категориям оборудования
type HistogramDTO struct {
	Edges  []float64        `json:"edges"`
	Series map[string][]int `json:"series"`
}

// OverviewDTO сводка для главной страницы
type OverviewDTO struct {
	TotalMachines     int            `json:"total_machines"`
	CriticalMachines  int            `json:"critical_machines"`
	HighRiskMachines  int            `json:"high_risk_machines"`
	HighRiskThreshold float64        `json:"high_risk_threshold"`
	NetSavings        float64        `json:"net_savings"`
	AverageHealth     float64        `json:"average_health"`
	TotalDowntime     float64        `json:"total_downtime_hours"`
	StatusBreakdown   map[string]int `json:"status_breakdown"`
	HealthHistogram   HistogramDTO   `json:"health_histogram"`
	Critical          []*MachineDTO  `json:"critical"`
	GeneratedAt       time.Time      `json:"generated_at"`
}
