package cache

import (
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

var _ Cache = (*RecordsCache)(nil)

// RecordsCache keeps computed personal records responses in memory.
type RecordsCache struct {
	mainCache     *freecache.Cache
	expireSeconds int
}

func NewRecordsCache(sizeMB int, expire time.Duration) *RecordsCache {
	if sizeMB <= 0 {
		sizeMB = 20
	}
	return &RecordsCache{
		mainCache:     freecache.NewCache(sizeMB * megabyte),
		expireSeconds: int(expire.Seconds()),
	}
}

func (rc *RecordsCache) Get(key string) ([]byte, bool) {
	value, err := rc.mainCache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return value, true
}

func (rc *RecordsCache) Set(key string, value []byte) bool {
	if err := rc.mainCache.Set([]byte(key), value, rc.expireSeconds); err != nil {
		log.Errorf("records cache set [%s]: %s", key, err)
		return false
	}
	return true
}

func (rc *RecordsCache) Clear() {
	rc.mainCache.Clear()
}

func (rc *RecordsCache) EntryCount() int64 {
	return rc.mainCache.EntryCount()
}
