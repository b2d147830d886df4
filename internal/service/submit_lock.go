package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SubmitLocker serialises in-flight submissions for one user/assessment pair
// so concurrent duplicates are turned away before any grading work.
type SubmitLocker interface {
	// TryLock 返回 ok=false 表示已有同键请求在处理中
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

func SubmitLockKey(userID string, assessmentID uint) string {
	return fmt.Sprintf("grading:submit:%d:%s", assessmentID, userID)
}

// 仅删除自己持有的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type RedisSubmitLocker struct {
	rdb *redis.Client
}

func NewRedisSubmitLocker(rdb *redis.Client) *RedisSubmitLocker {
	return &RedisSubmitLocker{rdb: rdb}
}

func (l *RedisSubmitLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return func() {}, false, err
	}

	release := func() {
		// 请求上下文可能已取消，释放锁使用独立上下文
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		releaseScript.Run(releaseCtx, l.rdb, []string{key}, token)
	}
	return release, true, nil
}

// MemorySubmitLocker 单进程实现，用于测试和未配置 Redis 的本地调试
type MemorySubmitLocker struct {
	mu   sync.Mutex
	held map[string]memoryLease
}

type memoryLease struct {
	token   string
	expires time.Time
}

func NewMemorySubmitLocker() *MemorySubmitLocker {
	return &MemorySubmitLocker{held: map[string]memoryLease{}}
}

func (l *MemorySubmitLocker) TryLock(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, ok := l.held[key]; ok && time.Now().Before(cur.expires) {
		return func() {}, false, nil
	}
	token := uuid.NewString()
	l.held[key] = memoryLease{token: token, expires: time.Now().Add(ttl)}

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		// 租约过期后可能已被其他请求重新持有
		if cur, ok := l.held[key]; ok && cur.token == token {
			delete(l.held, key)
		}
	}, true, nil
}
