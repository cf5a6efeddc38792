package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's active login session.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// DashboardMetricsKey returns the cache key for the admin dashboard snapshot.
func (r *CacheKeyStruct) DashboardMetricsKey() string {
	return "dashboard:metrics"
}

// NotificationChannel returns the Redis PubSub channel for broadcast notifications.
func (r *CacheKeyStruct) NotificationChannel() string {
	return "notifications:broadcast"
}

var CacheKey = NewCacheKeyStruct()
