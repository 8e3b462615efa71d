package constants

import "time"

const (
	// CHANNEL_SIZE is the buffer size of per-connection and broker channels.
	CHANNEL_SIZE = 100

	// FILE_MAX_SIZE caps uploaded file size in KB.
	FILE_MAX_SIZE = 50000

	// REDIS_TIMEOUT is the cache TTL for message/chat lists, in minutes.
	REDIS_TIMEOUT = 1

	// PRESENCE_TTL is how long a client-set status survives in the cache
	// without a refresh.
	PRESENCE_TTL = 5 * time.Minute

	// STORY_TTL is the story lifetime; older stories are swept.
	STORY_TTL = 24 * time.Hour
)
