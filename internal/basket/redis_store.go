package basket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	basketKeyPrefix = "basket:"
	basketIDKey     = "basket_id"
)

// RedisStore keeps baskets server-side: the session cookie carries only a
// random basket id, the entries live in Redis under that id with a TTL so
// abandoned baskets expire on their own.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func (s *RedisStore) Load(c *gin.Context) (Basket, error) {

	sess := sessions.Default(c)

	id, ok := sess.Get(basketIDKey).(string)
	if !ok || id == "" {
		return Basket{}, nil
	}

	data, err := s.Client.Get(c.Request.Context(), basketKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return Basket{}, nil
	}
	if err != nil {
		return Basket{}, fmt.Errorf("failed to load basket: %w", err)
	}

	var b Basket
	if err := json.Unmarshal(data, &b); err != nil {
		return Basket{}, fmt.Errorf("failed to decode basket: %w", err)
	}

	return b, nil
}

func (s *RedisStore) Save(c *gin.Context, b Basket) error {

	sess := sessions.Default(c)

	id, ok := sess.Get(basketIDKey).(string)
	if !ok || id == "" {
		id = uuid.NewString()
		sess.Set(basketIDKey, id)
		if err := sess.Save(); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
	}

	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode basket: %w", err)
	}

	if err := s.Client.Set(c.Request.Context(), basketKeyPrefix+id, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save basket: %w", err)
	}

	return nil
}

func (s *RedisStore) Drop(c *gin.Context) error {

	sess := sessions.Default(c)

	id, ok := sess.Get(basketIDKey).(string)
	if !ok || id == "" {
		return nil
	}

	if err := s.Client.Del(c.Request.Context(), basketKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to drop basket: %w", err)
	}

	return nil
}
