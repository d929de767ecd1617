package utils

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type CustomContext struct {
	AppSource string
	UserId    string
	RequestId string
}

var customContextKey = "CUSTOM_CONTEXT"

// UserIdHeaders lists the request headers checked, in order, for the caller's user id.
var UserIdHeaders = []string{"X-INBOXSTACK-USER-ID", "X-USER-ID", "X-User-Id"}

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey, customContext)
}

func WithCustomContextFromGinRequest(c *gin.Context, appSource string) context.Context {
	customContext := &CustomContext{
		AppSource: appSource,
		UserId:    c.GetString("UserId"),
		RequestId: c.GetString("RequestId"),
	}
	return WithCustomContext(c.Request.Context(), customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey).(*CustomContext)
	if !ok {
		return new(CustomContext)
	}
	return customContext
}

func GetAppSourceFromContext(ctx context.Context) string {
	return GetContext(ctx).AppSource
}

func GetUserIdFromContext(ctx context.Context) string {
	return GetContext(ctx).UserId
}

func GetRequestIdFromContext(ctx context.Context) string {
	return GetContext(ctx).RequestId
}

func SetUserIdInContext(ctx context.Context, userId string) context.Context {
	customContext := GetContext(ctx)
	customContext.UserId = userId
	return WithCustomContext(ctx, customContext)
}

func ValidateUserId(ctx context.Context) error {
	if GetUserIdFromContext(ctx) == "" {
		return errors.New("userId is missing")
	}
	return nil
}
