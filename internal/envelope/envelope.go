// Package envelope parses incoming analytics documents into the canonical
// event envelope shared by the ingest API and the processor.
package envelope

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InvalidEnvelopeError reports a document that cannot be admitted: a missing
// required field, a malformed timestamp or UUID, or a non-object payload.
type InvalidEnvelopeError struct {
	msg string
}

func (e *InvalidEnvelopeError) Error() string { return e.msg }

func invalidf(format string, args ...any) *InvalidEnvelopeError {
	return &InvalidEnvelopeError{msg: fmt.Sprintf(format, args...)}
}

// Event is the canonical envelope. Payload and Context are carried opaquely;
// only context.geo is ever inspected downstream.
type Event struct {
	EventID      string
	TraceID      string
	Producer     string
	Actor        string
	AppUUID      string
	EventType    string
	Timestamp    time.Time
	AnonUserID   string
	DeviceIDHash string
	SessionID    string
	SDKVersion   string
	EventVersion string
	Payload      map[string]any
	Context      map[string]any
}

// requiredFields are checked for presence in both modes, after alias
// normalization.
var requiredFields = []string{
	"app_uuid",
	"event_type",
	"timestamp",
	"anon_user_id",
	"device_id_hash",
	"session_id",
	"sdk_version",
	"event_version",
	"payload",
	"context",
}

var strictEnvelopeFields = []string{"event_name", "occurred_at", "event_id", "trace_id", "producer", "actor"}

// Parse validates doc and returns the canonical event.
//
// Aliases: event_name mirrors event_type and occurred_at mirrors timestamp.
// In strict mode the full envelope (event_name, occurred_at, event_id,
// trace_id, producer, actor) is mandatory and UUID fields are validated. In
// lenient mode missing ids are generated and producer/actor fall back to
// "smartbuket-sdk" / "anonymous".
func Parse(doc map[string]any, strict bool) (*Event, error) {
	norm := make(map[string]any, len(doc)+2)
	for k, v := range doc {
		norm[k] = v
	}

	if strict {
		var missing []string
		for _, k := range strictEnvelopeFields {
			v, ok := norm[k]
			if !ok || v == nil || v == "" {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return nil, invalidf("missing required envelope fields: [%s]", strings.Join(missing, " "))
		}
		norm["event_type"] = norm["event_name"]
		norm["timestamp"] = norm["occurred_at"]
	} else {
		if _, ok := norm["event_type"]; !ok {
			if v, ok := norm["event_name"]; ok {
				norm["event_type"] = v
			}
		}
		if _, ok := norm["timestamp"]; !ok {
			if v, ok := norm["occurred_at"]; ok {
				norm["timestamp"] = v
			}
		}
	}

	var missing []string
	for _, k := range requiredFields {
		if _, ok := norm[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, invalidf("missing required fields: [%s]", strings.Join(missing, " "))
	}

	ts, err := parseTimestamp(norm["timestamp"], "timestamp")
	if err != nil {
		return nil, err
	}

	payload, ok := norm["payload"].(map[string]any)
	if !ok {
		return nil, invalidf("payload must be object")
	}
	ctxObj, ok := norm["context"].(map[string]any)
	if !ok {
		return nil, invalidf("context must be object")
	}

	var eventID, traceID string
	if strict {
		eventID, err = coerceUUID(norm["event_id"])
		if err == nil {
			traceID, err = coerceUUID(norm["trace_id"])
		}
	} else {
		eventID, err = coerceOrNewUUID(norm["event_id"])
		if err == nil {
			traceID, err = coerceOrNewUUID(norm["trace_id"])
		}
	}
	if err != nil {
		return nil, invalidf("invalid event_id/trace_id")
	}

	producer, actor := norm["producer"], norm["actor"]
	if strict {
		if producer == nil || strings.TrimSpace(Stringify(producer)) == "" {
			return nil, invalidf("missing producer")
		}
		if actor == nil || strings.TrimSpace(Stringify(actor)) == "" {
			return nil, invalidf("missing actor")
		}
	} else {
		if producer == nil {
			producer = "smartbuket-sdk"
		}
		if actor == nil {
			actor = "anonymous"
		}
	}

	appUUID, err := coerceUUID(norm["app_uuid"])
	if err != nil {
		return nil, invalidf("invalid app_uuid")
	}

	return &Event{
		EventID:      eventID,
		TraceID:      traceID,
		Producer:     Stringify(producer),
		Actor:        Stringify(actor),
		AppUUID:      appUUID,
		EventType:    Stringify(norm["event_type"]),
		Timestamp:    ts,
		AnonUserID:   Stringify(norm["anon_user_id"]),
		DeviceIDHash: Stringify(norm["device_id_hash"]),
		SessionID:    Stringify(norm["session_id"]),
		SDKVersion:   Stringify(norm["sdk_version"]),
		EventVersion: Stringify(norm["event_version"]),
		Payload:      payload,
		Context:      ctxObj,
	}, nil
}

// naiveLayouts parse timestamps without zone info; the result is taken as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseTimestamp(v any, field string) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, invalidf("%s must be ISO-8601 string", field)
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	for _, layout := range naiveLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, invalidf("invalid %s", field)
}

func coerceUUID(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("invalid uuid")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func coerceOrNewUUID(v any) (string, error) {
	if v == nil || v == "" {
		return uuid.NewString(), nil
	}
	return coerceUUID(v)
}

// Stringify mirrors the loose scalar coercion of the SDK wire format, where
// fields like event_version may arrive as numbers.
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
