package consumer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type dlqSource struct {
	Broker string `json:"broker"`
}

type dlqPayload struct {
	RawValueB64 *string        `json:"raw_value_b64"`
	Decoded     map[string]any `json:"decoded"`
}

type dlqError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// dlqDoc wraps a failed delivery with enough context to replay it by hand:
// the raw bytes survive base64-encoded even when they never decoded.
type dlqDoc struct {
	FailedAt string     `json:"failed_at"`
	Reason   string     `json:"reason"`
	Source   dlqSource  `json:"source"`
	Payload  dlqPayload `json:"payload"`
	Error    *dlqError  `json:"error,omitempty"`
}

func utcNowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// publishDLQ parks a delivery on the dead-letter topic. Failures are logged
// and swallowed: the DLQ must never take down the worker.
func (p *Processor) publishDLQ(ctx context.Context, raw []byte, reason string, cause error, decoded map[string]any) {
	doc := dlqDoc{
		FailedAt: utcNowISO(),
		Reason:   reason,
		Source:   dlqSource{Broker: "rabbitmq"},
		Payload:  dlqPayload{Decoded: decoded},
	}
	if raw != nil {
		b64 := base64.StdEncoding.EncodeToString(raw)
		doc.Payload.RawValueB64 = &b64
	}
	if cause != nil {
		doc.Error = &dlqError{
			Type:    fmt.Sprintf("%T", cause),
			Message: cause.Error(),
		}
	}

	body, err := json.Marshal(doc)
	if err != nil {
		p.log.Error("marshal dlq document", zap.String("reason", reason), zap.Error(err))
		return
	}
	if err := p.broker.Publish(ctx, p.exchange, p.topics.DLQ, body, nil); err != nil {
		p.log.Error("dlq publish failed",
			zap.String("reason", reason),
			zap.Error(err),
		)
	}
}
