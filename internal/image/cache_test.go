package imagepkg

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBitmapCache(t *testing.T) {
	Convey("Given a cache of two entries", t, func() {
		c := NewBitmapCache(2)
		a, b, d := solidImage(red, 1, 1), solidImage(green, 1, 1), solidImage(blue, 1, 1)
		c.Set("a", a)
		c.Set("b", b)

		Convey("When a third entry is added after touching the first", func() {
			_, ok := c.Get("a")
			So(ok, ShouldBeTrue)
			c.Set("d", d)

			Convey("Then the least recently used entry is evicted", func() {
				_, ok := c.Get("b")
				So(ok, ShouldBeFalse)
				got, ok := c.Get("a")
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, a)
				So(c.Len(), ShouldEqual, 2)
			})
		})

		Convey("When an existing key is set again", func() {
			c.Set("a", d)

			Convey("Then it is replaced in place", func() {
				got, _ := c.Get("a")
				So(got, ShouldEqual, d)
				So(c.Len(), ShouldEqual, 2)
			})
		})

		Convey("Then hits and misses are counted", func() {
			c.Get("a")
			c.Get("zzz")
			hits, misses := c.Stats()
			So(hits, ShouldEqual, 1)
			So(misses, ShouldEqual, 1)
		})

		Convey("Then nil images are not stored", func() {
			c.Set("nil", nil)
			_, ok := c.Get("nil")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a disabled cache", t, func() {
		c := NewBitmapCache(0)

		Convey("Then it is nil and every method is a no-op", func() {
			So(c, ShouldBeNil)
			c.Set("a", solidImage(red, 1, 1))
			_, ok := c.Get("a")
			So(ok, ShouldBeFalse)
			So(c.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given concurrent writers", t, func() {
		c := NewBitmapCache(8)
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("k%d", i%12)
				c.Set(key, solidImage(red, 1, 1))
				c.Get(key)
			}(i)
		}
		wg.Wait()

		Convey("Then the capacity holds", func() {
			So(c.Len(), ShouldBeLessThanOrEqualTo, 8)
		})
	})
}

func TestFetcherCache(t *testing.T) {
	Convey("Given a fetcher backed by a cache", t, func() {
		srv := newAssetServer(map[string][]byte{"/a.png": solidPNG(t, red, 2, 2)})
		defer srv.Close()
		cache := NewBitmapCache(4)
		f := NewFetcher(WithCache(cache))

		Convey("When the same url is fetched twice", func() {
			first, ok := f.Fetch(context.Background(), KindItem, srv.URL+"/a.png")
			So(ok, ShouldBeTrue)
			second, ok := f.Fetch(context.Background(), KindItem, srv.URL+"/a.png")
			So(ok, ShouldBeTrue)

			Convey("Then the second is served from memory", func() {
				So(srv.count("/a.png"), ShouldEqual, 1)
				So(second, ShouldEqual, first)
				hits, misses := cache.Stats()
				So(hits, ShouldEqual, 1)
				So(misses, ShouldEqual, 1)
			})
		})
	})
}
