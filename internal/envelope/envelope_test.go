package envelope_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/envelope"
)

const testAppUUID = "00000000-0000-0000-0000-000000000001"

func legacyDoc() map[string]any {
	return map[string]any{
		"app_uuid":       testAppUUID,
		"event_type":     "geo.ping",
		"timestamp":      "2024-01-01T12:30:00Z",
		"anon_user_id":   "u1",
		"device_id_hash": "d1",
		"session_id":     "s1",
		"sdk_version":    "1.0.0",
		"event_version":  "1",
		"payload":        map[string]any{},
		"context":        map[string]any{},
	}
}

func fullEnvelopeDoc() map[string]any {
	doc := legacyDoc()
	delete(doc, "event_type")
	delete(doc, "timestamp")
	doc["event_name"] = "geo.ping"
	doc["occurred_at"] = "2024-01-01T12:30:00Z"
	doc["event_id"] = "11111111-1111-1111-1111-111111111111"
	doc["trace_id"] = "22222222-2222-2222-2222-222222222222"
	doc["producer"] = "smartbuket-sdk"
	doc["actor"] = "anonymous"
	return doc
}

func TestParse_StrictRejectsLegacyOnly(t *testing.T) {
	_, err := envelope.Parse(legacyDoc(), true)

	require.Error(t, err)
	var ie *envelope.InvalidEnvelopeError
	require.True(t, errors.As(err, &ie))
	assert.Contains(t, err.Error(), "envelope fields")
}

func TestParse_StrictAcceptsFullEnvelope(t *testing.T) {
	ev, err := envelope.Parse(fullEnvelopeDoc(), true)

	require.NoError(t, err)
	assert.Equal(t, "geo.ping", ev.EventType)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", ev.EventID)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", ev.TraceID)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC), ev.Timestamp.UTC())
}

func TestParse_StrictRejectsBlankProducer(t *testing.T) {
	doc := fullEnvelopeDoc()
	doc["producer"] = "   "

	_, err := envelope.Parse(doc, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "producer")
}

func TestParse_LenientGeneratesIDsAndDefaults(t *testing.T) {
	ev, err := envelope.Parse(legacyDoc(), false)

	require.NoError(t, err)
	_, err = uuid.Parse(ev.EventID)
	assert.NoError(t, err, "generated event_id must be a valid UUID")
	_, err = uuid.Parse(ev.TraceID)
	assert.NoError(t, err, "generated trace_id must be a valid UUID")
	assert.Equal(t, "smartbuket-sdk", ev.Producer)
	assert.Equal(t, "anonymous", ev.Actor)
}

func TestParse_LenientAcceptsAliasFields(t *testing.T) {
	doc := legacyDoc()
	delete(doc, "event_type")
	delete(doc, "timestamp")
	doc["event_name"] = "session.start"
	doc["occurred_at"] = "2024-01-01T12:30:00Z"

	ev, err := envelope.Parse(doc, false)

	require.NoError(t, err)
	assert.Equal(t, "session.start", ev.EventType)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC), ev.Timestamp.UTC())
}

func TestParse_AliasFamiliesProduceSameEvent(t *testing.T) {
	legacy, err := envelope.Parse(legacyDoc(), false)
	require.NoError(t, err)

	aliased := legacyDoc()
	delete(aliased, "event_type")
	delete(aliased, "timestamp")
	aliased["event_name"] = "geo.ping"
	aliased["occurred_at"] = "2024-01-01T12:30:00Z"
	pm, err := envelope.Parse(aliased, false)
	require.NoError(t, err)

	// Identical modulo the generated ids.
	assert.Equal(t, legacy.EventType, pm.EventType)
	assert.True(t, legacy.Timestamp.Equal(pm.Timestamp))
	assert.Equal(t, legacy.AnonUserID, pm.AnonUserID)
	assert.Equal(t, legacy.Producer, pm.Producer)
}

func TestParse_NaiveTimestampAssumedUTC(t *testing.T) {
	doc := legacyDoc()
	doc["timestamp"] = "2024-01-01T12:30:00"

	ev, err := envelope.Parse(doc, false)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC), ev.Timestamp)
}

func TestParse_OffsetTimestampKept(t *testing.T) {
	doc := legacyDoc()
	doc["timestamp"] = "2024-01-01T14:30:00+02:00"

	ev, err := envelope.Parse(doc, false)

	require.NoError(t, err)
	assert.True(t, ev.Timestamp.Equal(time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)))
}

func TestParse_MissingRequiredField(t *testing.T) {
	doc := legacyDoc()
	delete(doc, "device_id_hash")

	_, err := envelope.Parse(doc, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "device_id_hash")
}

func TestParse_PayloadMustBeObject(t *testing.T) {
	doc := legacyDoc()
	doc["payload"] = []any{"not", "an", "object"}

	_, err := envelope.Parse(doc, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "payload must be object")
}

func TestParse_ContextMustBeObject(t *testing.T) {
	doc := legacyDoc()
	doc["context"] = nil

	_, err := envelope.Parse(doc, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context must be object")
}

func TestParse_LenientRejectsMalformedEventID(t *testing.T) {
	doc := legacyDoc()
	doc["event_id"] = "not-a-uuid"

	_, err := envelope.Parse(doc, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "event_id")
}

func TestParse_InvalidAppUUID(t *testing.T) {
	doc := legacyDoc()
	doc["app_uuid"] = "not-a-uuid"

	_, err := envelope.Parse(doc, false)

	require.Error(t, err)
	var ie *envelope.InvalidEnvelopeError
	require.True(t, errors.As(err, &ie))
	assert.Contains(t, err.Error(), "app_uuid")
}

func TestParse_NumericEventVersionStringified(t *testing.T) {
	doc := legacyDoc()
	doc["event_version"] = 1

	ev, err := envelope.Parse(doc, false)

	require.NoError(t, err)
	assert.Equal(t, "1", ev.EventVersion)
}

func TestParse_TimestampMustBeString(t *testing.T) {
	doc := legacyDoc()
	doc["timestamp"] = 1704112200

	_, err := envelope.Parse(doc, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ISO-8601")
}
