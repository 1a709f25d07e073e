// File: optimizer/history.go

package optimizer

import (
	"context"
	"encoding/json"

	"github.com/teilomillet/promptlift/types"
)

// loadAnalytics restores analytics saved by a previous process and merges
// them into whatever this engine recorded before the read succeeded. A missing
// key or undecodable value counts as loaded; a read failure does not, and
// reports false so the caller holds off overwriting the persisted state.
func (e *Engine) loadAnalytics(ctx context.Context) bool {
	raw, ok, err := e.store.Get(ctx, AnalyticsKey)
	if err != nil {
		perr := types.NewPromptError(types.ErrorTypeCacheUnavailable, "failed to load analytics", err)
		e.logger.Warn("Persisted analytics unavailable", perr.LoggableFields()...)
		return false
	}

	var state AnalyticsState
	if ok {
		if err := json.Unmarshal(raw, &state); err != nil {
			e.logger.Warn("Discarding unreadable analytics", "error", err)
			state = AnalyticsState{}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.analyticsLoaded {
		e.analytics = state.merge(e.analytics)
		e.analyticsLoaded = true
	}
	return true
}

// saveAnalytics writes snapshot. On failure the in-memory state is kept and
// the next update writes it again.
func (e *Engine) saveAnalytics(ctx context.Context, snapshot AnalyticsState) error {
	raw, err := json.Marshal(snapshot)
	if err == nil {
		err = e.store.Set(ctx, AnalyticsKey, raw)
	}
	if err != nil {
		perr := types.NewPromptError(types.ErrorTypeAnalyticsPersist, "failed to persist analytics", err)
		e.logger.Warn("Analytics not persisted", perr.LoggableFields()...)
		return perr
	}
	return nil
}

// appendHistory adds record to the persisted history, newest last, keeping at
// most historyLimit records. A limit of zero or less disables history. When
// the stored history cannot be read the record is held in memory and written
// with the next update.
func (e *Engine) appendHistory(ctx context.Context, record types.HistoryRecord) {
	if e.historyLimit <= 0 {
		return
	}
	e.historyMu.Lock()
	defer e.historyMu.Unlock()

	e.pendingHistory = append(e.pendingHistory, record)
	if over := len(e.pendingHistory) - e.historyLimit; over > 0 {
		e.pendingHistory = e.pendingHistory[over:]
	}

	records, err := e.readHistory(ctx)
	if types.IsType(err, types.ErrorTypeCacheUnavailable) {
		e.logger.Warn("History kept in memory", "pending", len(e.pendingHistory), "error", err)
		return
	}
	if err != nil {
		e.logger.Warn("Resetting unreadable history", "error", err)
		records = nil
	}
	records = append(records, e.pendingHistory...)
	if over := len(records) - e.historyLimit; over > 0 {
		records = records[over:]
	}

	raw, err := json.Marshal(records)
	if err == nil {
		err = e.store.Set(ctx, HistoryKey, raw)
	}
	if err != nil {
		perr := types.NewPromptError(types.ErrorTypeAnalyticsPersist, "failed to persist history", err)
		e.logger.Warn("History not persisted", perr.LoggableFields()...)
		return
	}
	e.pendingHistory = nil
}

// History returns the persisted optimization history, oldest first.
func (e *Engine) History(ctx context.Context) ([]types.HistoryRecord, error) {
	e.historyMu.Lock()
	defer e.historyMu.Unlock()
	return e.readHistory(ctx)
}

func (e *Engine) readHistory(ctx context.Context) ([]types.HistoryRecord, error) {
	raw, ok, err := e.store.Get(ctx, HistoryKey)
	if err != nil {
		return nil, types.NewPromptError(types.ErrorTypeCacheUnavailable, "failed to read history", err)
	}
	if !ok {
		return []types.HistoryRecord{}, nil
	}
	var records []types.HistoryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}
