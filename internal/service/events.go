package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// publishJSON is best-effort: a failed publish is logged and never fails
// the operation that produced the event.
func publishJSON(ctx context.Context, logger *zap.Logger, publisher Publisher, queue string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
		return
	}

	if err := publisher.Publish(ctx, queue, body); err != nil {
		logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", queue, err.Error())
	}
}
