package storage

import (
	"database/sql"

	"github.com/redis/go-redis/v9"
)

var (
	Activity    *ActivityStorage
	Submissions *SubmissionStorage
)

func Init(sqlClient *sql.DB, redisClient *redis.Client) {
	Activity = NewActivityStorage(sqlClient)
	Submissions = NewSubmissionStorage(redisClient)
}
