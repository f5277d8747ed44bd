package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewZapSink(zap.New(core))

	sink.TrackTrace("Export started", zap.String("at", "now"))
	sink.TrackException(errors.New("boom"), zap.String("content_type", "movies"))
	sink.TrackException(nil)
	sink.TrackDocument(DocumentEvent{ContentType: "shows", Key: "tt1", Outcome: OutcomeInserted, Duration: time.Second, Processed: 1, Committed: 1, Total: 2})
	sink.TrackDocument(DocumentEvent{ContentType: "shows", Key: "tt2", Outcome: OutcomeSkipped, Err: errors.New("relocation failed")})

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, "Export started", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])

	assert.Equal(t, "Document reconciled", entries[2].Message)
	assert.Equal(t, "inserted", entries[2].ContextMap()["outcome"])
	assert.Equal(t, int64(2), entries[2].ContextMap()["total"])
	assert.Equal(t, int64(1), entries[2].ContextMap()["committed"])

	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)
	assert.Equal(t, "Document skipped", entries[3].Message)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	var sink Sink = r

	sink.TrackTrace("start")
	sink.TrackException(errors.New("x"))
	sink.TrackDocument(DocumentEvent{Key: "tt1"})

	traces, exceptions, docs := r.Snapshot()
	assert.Equal(t, []string{"start"}, traces)
	assert.Len(t, exceptions, 1)
	assert.Equal(t, "tt1", docs[0].Key)
}
