package ioc

import (
	"github.com/ecodeclub/ecache"
	eredis "github.com/ecodeclub/ecache/redis"
	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
)

func InitRedis() redis.Cmdable {
	return redis.NewClient(&redis.Options{
		Addr: econf.GetString("redis.addr"),
	})
}

func InitCache(cmd redis.Cmdable) ecache.Cache {
	return &ecache.NamespaceCache{
		C:         eredis.NewCache(cmd),
		Namespace: "jobgenie:",
	}
}
