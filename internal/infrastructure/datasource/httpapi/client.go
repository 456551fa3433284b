// Package httpapi fetches the fleet from an upstream prediction service over REST.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
)

// Upstream paths relative to the base URL.
const (
	MachinesPath    = "/machines/health"
	HistoryPath     = "/history"
	MaintenancePath = "/maintenance"
)

// maxBodyBytes caps a single upstream response.
const maxBodyBytes = 8 << 20

// Client is a port.DataSource for the upstream service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Client targeting endpoint; timeout bounds each request.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// machineJSON mirrors the upstream shape; dates arrive as strings.
type machineJSON struct {
	MachineID          string  `json:"machine_id"`
	AssetType          string  `json:"asset_type"`
	AssemblyLine       int     `json:"assembly_line"`
	HealthScore        float64 `json:"health_score"`
	FailureProbability float64 `json:"failure_probability"`
	Status             string  `json:"status"`
	LastMaintenance    string  `json:"last_maintenance"`
	DowntimeHours      float64 `json:"downtime_hours"`
}

type historyJSON struct {
	Date              string `json:"date"`
	CriticalCount     int    `json:"critical_count"`
	WarningCount      int    `json:"warning_count"`
	HealthyCount      int    `json:"healthy_count"`
	PredictedFailures int    `json:"predicted_failures"`
	ActualFailures    int    `json:"actual_failures"`
}

type maintenanceJSON struct {
	MachineID    string `json:"machine_id"`
	AssemblyLine int    `json:"assembly_line"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Type         string `json:"type"`
}

func (c *Client) FetchMachines(ctx context.Context) ([]port.RawMachine, error) {
	var rows []machineJSON
	if err := c.get(ctx, MachinesPath, &rows); err != nil {
		return nil, err
	}

	out := make([]port.RawMachine, 0, len(rows))
	for _, r := range rows {
		last, err := parseDate(r.LastMaintenance)
		if err != nil {
			return nil, fmt.Errorf("machine %q last_maintenance: %w", r.MachineID, err)
		}
		out = append(out, port.RawMachine{
			MachineID:          r.MachineID,
			AssetType:          r.AssetType,
			AssemblyLine:       r.AssemblyLine,
			HealthScore:        r.HealthScore,
			FailureProbability: r.FailureProbability,
			Status:             r.Status,
			LastMaintenance:    last,
			DowntimeHours:      r.DowntimeHours,
		})
	}
	return out, nil
}

func (c *Client) FetchHistory(ctx context.Context) ([]port.RawHistoricalDay, error) {
	var rows []historyJSON
	if err := c.get(ctx, HistoryPath, &rows); err != nil {
		return nil, err
	}

	out := make([]port.RawHistoricalDay, 0, len(rows))
	for _, r := range rows {
		date, err := parseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("history date: %w", err)
		}
		out = append(out, port.RawHistoricalDay{
			Date:              date,
			CriticalCount:     r.CriticalCount,
			WarningCount:      r.WarningCount,
			HealthyCount:      r.HealthyCount,
			PredictedFailures: r.PredictedFailures,
			ActualFailures:    r.ActualFailures,
		})
	}
	return out, nil
}

func (c *Client) FetchMaintenanceEvents(ctx context.Context) ([]port.RawMaintenanceEvent, error) {
	var rows []maintenanceJSON
	if err := c.get(ctx, MaintenancePath, &rows); err != nil {
		return nil, err
	}

	out := make([]port.RawMaintenanceEvent, 0, len(rows))
	for _, r := range rows {
		start, err := parseDate(r.Start)
		if err != nil {
			return nil, fmt.Errorf("maintenance %q start: %w", r.MachineID, err)
		}
		end, err := parseDate(r.End)
		if err != nil {
			return nil, fmt.Errorf("maintenance %q end: %w", r.MachineID, err)
		}
		out = append(out, port.RawMaintenanceEvent{
			MachineID:    r.MachineID,
			AssemblyLine: r.AssemblyLine,
			Start:        start,
			End:          end,
			Type:         r.Type,
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// parseDate accepts YYYY-MM-DD and RFC 3339; empty means unknown.
func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := cast.ToTimeInDefaultLocationE(v, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
