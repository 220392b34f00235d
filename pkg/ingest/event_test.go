package ingest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminofox/uasklv/pkg/logger"
	"github.com/aminofox/uasklv/pkg/uasklv"
)

const sampleEvent = `{
  "Records": [
    {"s3": {"bucket": {"name": "flight-telemetry"}, "object": {"key": "run-1/segment.klv"}}},
    {"s3": {"bucket": {"name": "flight-telemetry"}, "object": {"key": "run-1/segment2.klv"}}}
  ]
}`

func TestS3EventUnmarshalsBucketAndKey(t *testing.T) {
	var event S3Event
	require.NoError(t, json.Unmarshal([]byte(sampleEvent), &event))

	require.Len(t, event.Records, 2)
	assert.Equal(t, "flight-telemetry", event.Records[0].S3.Bucket.Name)
	assert.Equal(t, "run-1/segment.klv", event.Records[0].S3.Object.Key)
	assert.Equal(t, "run-1/segment2.klv", event.Records[1].S3.Object.Key)
}

func TestHandleS3EventEmptyRecordsYieldsNoResults(t *testing.T) {
	log := logger.NewDefaultLogger(logger.ErrorLevel, "text")
	decoder := uasklv.New(uasklv.WithLogger(log))

	results, err := HandleS3Event(context.Background(), []byte(`{"Records":[]}`), nil, nil, decoder, log)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestHandleS3EventRejectsMalformedJSON(t *testing.T) {
	log := logger.NewDefaultLogger(logger.ErrorLevel, "text")
	decoder := uasklv.New(uasklv.WithLogger(log))

	_, err := HandleS3Event(context.Background(), []byte("not json"), nil, nil, decoder, log)
	assert.Error(t, err)
}
