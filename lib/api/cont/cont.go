package cont

import (
	"context"
	"zylumine/entity"
)

type ctxKey string

const IdentityKey ctxKey = "identity"

func PutIdentity(c context.Context, id *entity.Identity) context.Context {
	return context.WithValue(c, IdentityKey, *id)
}

// GetIdentity returns nil when the request carries no session.
func GetIdentity(c context.Context) *entity.Identity {
	id, ok := c.Value(IdentityKey).(entity.Identity)
	if !ok {
		return nil
	}
	return &id
}
