package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/aminofox/uasklv/pkg/logger"
	"github.com/aminofox/uasklv/pkg/uasklv"
)

// S3Event is the subset of an S3 "ObjectCreated" event notification
// this package needs: which bucket and key triggered it.
type S3Event struct {
	Records []struct {
		S3 struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key string `json:"key"`
			} `json:"object"`
		} `json:"s3"`
	} `json:"Records"`
}

// ObjectResult pairs one S3 object's decode output with identifying
// information, for a caller processing a batch of event records.
type ObjectResult struct {
	RunID  string
	Bucket string
	Key    string
	Result *uasklv.Result
}

// HandleS3Event parses an S3 event notification payload, fetches each
// referenced object through source, skips objects Dedup has already
// claimed, and decodes the rest with decoder. It mirrors the
// bucket/key extraction and decode-then-log flow of this project's
// batch ingestion handler, generalized to MISB metadata instead of
// media segments.
func HandleS3Event(ctx context.Context, eventJSON []byte, source *S3Source, dedup *Dedup, decoder *uasklv.Decoder, log logger.Logger) ([]ObjectResult, error) {
	var event S3Event
	if err := json.Unmarshal(eventJSON, &event); err != nil {
		return nil, fmt.Errorf("ingest: parsing S3 event: %w", err)
	}

	var results []ObjectResult
	for _, rec := range event.Records {
		bucket := rec.S3.Bucket.Name
		key := rec.S3.Object.Key
		runID := uuid.NewString()

		if dedup != nil {
			claimed, err := dedup.Claim(ctx, bucket+"/"+key)
			if err != nil {
				return results, err
			}
			if !claimed {
				log.Info("skipping already-processed object", logger.String("run_id", runID), logger.String("bucket", bucket), logger.String("key", key))
				continue
			}
		}

		raw, err := source.Fetch(ctx, bucket, key)
		if err != nil {
			return results, err
		}

		result, err := decoder.Decode(raw)
		if err != nil {
			return results, fmt.Errorf("ingest: decoding s3://%s/%s: %w", bucket, key, err)
		}

		log.Info("decoded object", logger.String("run_id", runID), logger.String("bucket", bucket), logger.String("key", key), logger.Int("packets", len(result.Packets)))
		results = append(results, ObjectResult{RunID: runID, Bucket: bucket, Key: key, Result: result})
	}

	return results, nil
}
