package kv_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/lm-xiao-fen/my-inft-repo/internal/adapters/kv"
)

func newTestStore(t *testing.T) (*kv.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return kv.NewRedisStoreFromClient(client), mr
}

func TestRedisStore(t *testing.T) {
	Convey("Given a Redis-backed key-value store", t, func() {
		store, mr := newTestStore(t)
		ctx := context.Background()

		Convey("When a value is put and read back", func() {
			So(store.Put(ctx, "k", "v"), ShouldBeNil)
			val, err := store.Get(ctx, "k")
			So(err, ShouldBeNil)
			So(val, ShouldEqual, "v")
		})

		Convey("When an absent key is read", func() {
			_, err := store.Get(ctx, "missing")
			So(kv.IsNotFound(err), ShouldBeTrue)
		})

		Convey("When a key is deleted", func() {
			So(store.Put(ctx, "k", "v"), ShouldBeNil)
			removed, err := store.Delete(ctx, "k")
			So(err, ShouldBeNil)
			So(removed, ShouldBeTrue)
			_, err = store.Get(ctx, "k")
			So(kv.IsNotFound(err), ShouldBeTrue)

			Convey("And deleting it again reports nothing removed", func() {
				removed, err := store.Delete(ctx, "k")
				So(err, ShouldBeNil)
				So(removed, ShouldBeFalse)
			})
		})

		Convey("When a value is put with a TTL", func() {
			So(store.PutTTL(ctx, "k", "v", time.Minute), ShouldBeNil)

			Convey("Then it reads back before expiry", func() {
				val, err := store.Get(ctx, "k")
				So(err, ShouldBeNil)
				So(val, ShouldEqual, "v")
			})

			Convey("And it is gone after the store-side expiry elapses", func() {
				mr.FastForward(time.Minute + time.Second)
				_, err := store.Get(ctx, "k")
				So(kv.IsNotFound(err), ShouldBeTrue)
			})
		})
	})
}
