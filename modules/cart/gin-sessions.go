package cart

import (
	"context"
	"fmt"

	"github.com/gin-gonic/contrib/sessions"
)

// GinGonicSession stores cart blobs in the request's gin session.
type GinGonicSession struct {
	Session sessions.Session
}

func (gcs GinGonicSession) Get(_ context.Context, key string) (string, bool, error) {
	data := gcs.Session.Get(key)
	if data == nil {
		return "", false, nil
	}

	encoded, ok := data.(string)
	if !ok {
		return "", false, fmt.Errorf("session key %s holds %T", key, data)
	}

	return encoded, true, nil
}

func (gcs GinGonicSession) Put(_ context.Context, key, blob string) error {
	gcs.Session.Set(key, blob)
	return gcs.Session.Save()
}

func (gcs GinGonicSession) Forget(_ context.Context, key string) error {
	gcs.Session.Delete(key)
	return gcs.Session.Save()
}
