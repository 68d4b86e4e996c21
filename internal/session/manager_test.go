package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/lm-xiao-fen/my-inft-repo/internal/adapters/kv"
	"github.com/lm-xiao-fen/my-inft-repo/internal/session"
	"github.com/lm-xiao-fen/my-inft-repo/pkg/metrics"
)

func newTestManager(t *testing.T, ttl time.Duration) (*session.Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewManager(kv.NewRedisStoreFromClient(client), ttl), mr
}

func TestSessionLifecycle(t *testing.T) {
	Convey("Given a session manager with a one-hour TTL", t, func() {
		mgr, mr := newTestManager(t, time.Hour)
		ctx := context.Background()

		Convey("When a session is created", func() {
			token, err := mgr.Create(ctx, "admin")
			So(err, ShouldBeNil)
			So(token, ShouldNotBeEmpty)

			Convey("Then it validates immediately after creation", func() {
				sess, err := mgr.Validate(ctx, token)
				So(err, ShouldBeNil)
				So(sess, ShouldNotBeNil)
				So(sess.Username, ShouldEqual, "admin")
				So(sess.Created, ShouldBeGreaterThan, 0)
			})

			Convey("And it is absent after the TTL elapses", func() {
				mr.FastForward(time.Hour + time.Minute)
				sess, err := mgr.Validate(ctx, token)
				So(err, ShouldBeNil)
				So(sess, ShouldBeNil)
			})

			Convey("And destroying it makes it absent", func() {
				So(mgr.Destroy(ctx, token), ShouldBeNil)
				sess, err := mgr.Validate(ctx, token)
				So(err, ShouldBeNil)
				So(sess, ShouldBeNil)
			})

			Convey("And two creations yield distinct tokens", func() {
				other, err := mgr.Create(ctx, "admin")
				So(err, ShouldBeNil)
				So(other, ShouldNotEqual, token)
			})
		})

		Convey("When an unknown token is validated", func() {
			sess, err := mgr.Validate(ctx, "no-such-token")
			So(err, ShouldBeNil)
			So(sess, ShouldBeNil)
		})

		Convey("When the empty token is validated", func() {
			sess, err := mgr.Validate(ctx, "")
			So(err, ShouldBeNil)
			So(sess, ShouldBeNil)
		})

		Convey("When the stored record is undecodable", func() {
			So(mr.Set("session:garbled", "{not json"), ShouldBeNil)
			sess, err := mgr.Validate(ctx, "garbled")
			So(err, ShouldBeNil)
			So(sess, ShouldBeNil)
		})

		Convey("When an absent token is destroyed", func() {
			So(mgr.Destroy(ctx, "no-such-token"), ShouldBeNil)
			So(mgr.Destroy(ctx, ""), ShouldBeNil)
		})
	})
}

func TestSessionDestroyedCounter(t *testing.T) {
	Convey("Given a session manager", t, func() {
		mgr, _ := newTestManager(t, time.Hour)
		ctx := context.Background()

		Convey("When an absent token is destroyed", func() {
			before := destroyedTotal()
			So(mgr.Destroy(ctx, "no-such-token"), ShouldBeNil)

			Convey("Then the destroyed counter stays unchanged", func() {
				So(destroyedTotal(), ShouldEqual, before)
			})
		})

		Convey("When a live session is destroyed", func() {
			token, err := mgr.Create(ctx, "admin")
			So(err, ShouldBeNil)

			before := destroyedTotal()
			So(mgr.Destroy(ctx, token), ShouldBeNil)

			Convey("Then the destroyed counter increments once", func() {
				So(destroyedTotal(), ShouldEqual, before+1)
			})
		})
	})
}

// destroyedTotal reads the sessions-destroyed counter from the registry.
func destroyedTotal() float64 {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		return -1
	}
	for _, f := range families {
		if f.GetName() == "profiles_site_sessions_destroyed_total" {
			var total float64
			for _, m := range f.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			return total
		}
	}
	return 0
}

func TestSessionCookie(t *testing.T) {
	Convey("Given the session cookie helpers", t, func() {
		Convey("When the cookie is issued", func() {
			w := httptest.NewRecorder()
			session.SetCookie(w, "tok-123", 2*time.Hour)

			cookies := w.Result().Cookies()
			So(cookies, ShouldHaveLength, 1)
			c := cookies[0]
			So(c.Name, ShouldEqual, session.CookieName)
			So(c.Value, ShouldEqual, "tok-123")
			So(c.Path, ShouldEqual, "/")
			So(c.HttpOnly, ShouldBeTrue)
			So(c.SameSite, ShouldEqual, http.SameSiteLaxMode)
			So(c.MaxAge, ShouldEqual, 7200)

			Convey("Then the token reads back from a request", func() {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.AddCookie(c)
				So(session.TokenFromRequest(r), ShouldEqual, "tok-123")
			})
		})

		Convey("When the cookie is cleared", func() {
			w := httptest.NewRecorder()
			session.ClearCookie(w)

			cookies := w.Result().Cookies()
			So(cookies, ShouldHaveLength, 1)
			So(cookies[0].Value, ShouldEqual, "")
			So(cookies[0].MaxAge, ShouldBeLessThan, 0)
		})

		Convey("When a request carries no cookie", func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			So(session.TokenFromRequest(r), ShouldEqual, "")
		})
	})
}
