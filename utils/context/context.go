package context

import (
	"context"

	"github.com/greengarden/greenery/constant"
	"github.com/greengarden/greenery/model"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// GetViewer returns the viewer identity resolved by the auth middleware.
// Requests that never went through it count as anonymous.
func GetViewer(ctx context.Context) model.Viewer {
	v := ctx.Value(constant.ViewerKey)
	if v == nil {
		return model.Anonymous()
	}
	viewer, ok := v.(model.Viewer)
	if !ok {
		return model.Anonymous()
	}
	return viewer
}

func WithViewer(ctx context.Context, viewer model.Viewer) context.Context {
	ctx = context.WithValue(ctx, constant.ViewerKey, viewer)
	if !viewer.IsAnonymous() {
		ctx = context.WithValue(ctx, constant.UserIDKey, viewer.UserID)
	}
	return ctx
}
