package basket

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionKey = "draft_basket"

func init() {
	// The cookie session store serializes values with gob.
	gob.Register(Basket{})
}

// SessionStore keeps the basket inside the session cookie itself, so the
// basket lives and dies with the browser session and needs no backing service.
type SessionStore struct{}

func (SessionStore) Load(c *gin.Context) (Basket, error) {

	sess := sessions.Default(c)

	b, ok := sess.Get(sessionKey).(Basket)
	if !ok {
		return Basket{}, nil
	}

	return b, nil
}

func (SessionStore) Save(c *gin.Context, b Basket) error {

	sess := sessions.Default(c)
	sess.Set(sessionKey, b)

	return sess.Save()
}

func (SessionStore) Drop(c *gin.Context) error {

	sess := sessions.Default(c)

	if sess.Get(sessionKey) == nil {
		return nil
	}

	sess.Delete(sessionKey)
	return sess.Save()
}
