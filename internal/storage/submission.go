package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hogyzen12/carrot-go/internal/types"
	"github.com/redis/go-redis/v9"
)

// submissionTTL bounds how long a freshly submitted signature stays in the
// hot cache; after that only the MySQL history serves lookups.
const submissionTTL = 24 * time.Hour

// SubmissionStorage keeps recent submissions in Redis keyed by signature so
// status lookups skip MySQL for the common just-submitted case.
type SubmissionStorage struct {
	client *redis.Client
}

func NewSubmissionStorage(client *redis.Client) *SubmissionStorage {
	return &SubmissionStorage{client: client}
}

func (s *SubmissionStorage) Set(activity *types.Activity) error {
	ctx := context.Background()

	payload, err := json.Marshal(activity)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, activity.Signature, payload, submissionTTL).Err()
}

func (s *SubmissionStorage) Get(signature string) (*types.Activity, error) {
	ctx := context.Background()

	payload, err := s.client.Get(ctx, signature).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	var activity types.Activity
	if err := json.Unmarshal([]byte(payload), &activity); err != nil {
		return nil, err
	}

	return &activity, nil
}
