package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// ErrNoSession is returned when a user has no live session hash.
var ErrNoSession = errors.New("session not found")

// Session is the per-user login state kept in a Redis hash.
type Session struct {
	UserID   string
	SID      string
	Username string
	Email    string
	Role     string
}

// SessionStore keeps one session hash per user under user:session:<id>.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func SessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Save writes the session and resets its TTL.
func (s *SessionStore) Save(ctx context.Context, sess Session) error {
	key := SessionKey(sess.UserID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    sess.UserID,
		"sid":        sess.SID,
		"username":   sess.Username,
		"email":      sess.Email,
		"role":       sess.Role,
		"created_at": nowRFC3339(),
	})
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, userID string) (Session, error) {
	data, err := s.rdb.HGetAll(ctx, SessionKey(userID)).Result()
	if err != nil {
		return Session{}, err
	}
	if len(data) == 0 {
		return Session{}, ErrNoSession
	}
	return Session{
		UserID:   data["user_id"],
		SID:      data["sid"],
		Username: data["username"],
		Email:    data["email"],
		Role:     data["role"],
	}, nil
}

// Rotate replaces the session id keeping the other fields.
func (s *SessionStore) Rotate(ctx context.Context, userID, sid string) error {
	key := SessionKey(userID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{"sid": sid, "updated_at": nowRFC3339()})
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// patchScript writes ARGV as field/value pairs only if the hash still exists,
// so an expired session is never recreated without a TTL.
var patchScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], unpack(ARGV))
return 1
`)

// Patch updates fields of a live session and keeps its remaining TTL.
// It is a no-op when the user has no session.
func (s *SessionStore) Patch(ctx context.Context, userID string, fields map[string]any) error {
	args := make([]any, 0, 2*len(fields)+2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	args = append(args, "updated_at", nowRFC3339())
	return patchScript.Run(ctx, s.rdb, []string{SessionKey(userID)}, args...).Err()
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, SessionKey(userID)).Err()
}
