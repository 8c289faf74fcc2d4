package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/youruser/recapapp/internal/match"
	"github.com/youruser/recapapp/pkg/logger"
	"github.com/youruser/recapapp/pkg/metrics"
)

// fakeRenderer validates like the real renderer and returns a fixed body.
type fakeRenderer struct {
	version string
	calls   int
	err     error
}

func (f *fakeRenderer) Render(_ context.Context, p *match.Participant, version string) ([]byte, error) {
	f.calls++
	f.version = version
	if err := match.Validate(p); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png"), nil
}

func participant(puuid string) match.Participant {
	return match.Participant{
		PUUID:     puuid,
		Placement: 1,
		Level:     9,
		Units:     []match.Unit{{CharacterID: "TFT15_Ahri", Tier: 3, Rarity: 4}},
		Traits:    []match.Trait{{Name: "TFT15_Bastion", Style: 3, TierCurrent: 3, NumUnits: 6}},
	}
}

func newTestEngine(r Renderer) (*gin.Engine, *metrics.Manager) {
	gin.SetMode(gin.TestMode)
	m := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
	e := gin.New()
	RegisterRoutes(e, NewHandler(r, "15.13.1", "https://example.com/match/{id}", logger.Nop()), m)
	return e, m
}

func do(e *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	Convey("Given the API", t, func() {
		e, _ := newTestEngine(&fakeRenderer{})
		w := do(e, http.MethodGet, "/api/health", nil)

		Convey("Then health reports ok with a request id", func() {
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"ok"`)
			So(w.Header().Get(RequestIDHeader), ShouldNotBeEmpty)
		})
	})
}

func TestRecap(t *testing.T) {
	Convey("Given the recap endpoint", t, func() {
		r := &fakeRenderer{}
		e, _ := newTestEngine(r)

		Convey("When a valid participant is posted without a version", func() {
			p := participant("me")
			w := do(e, http.MethodPost, "/api/recap", gin.H{"participant": p})

			Convey("Then the image is returned with the default version and a caption", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
				So(w.Body.String(), ShouldEqual, "png")
				So(r.version, ShouldEqual, "15.13.1")
				caption, err := url.PathUnescape(w.Header().Get(CaptionHeader))
				So(err, ShouldBeNil)
				So(caption, ShouldEqual, match.Caption(&p))
			})

			Convey("Then the caption header is plain ASCII", func() {
				for _, b := range []byte(w.Header().Get(CaptionHeader)) {
					So(int(b), ShouldBeLessThan, 0x80)
				}
				So(w.Header().Get(CaptionHeader), ShouldStartWith, "1st%20place")
			})
		})

		Convey("When a version is given", func() {
			p := participant("me")
			do(e, http.MethodPost, "/api/recap", gin.H{"participant": p, "asset_version": "14.1.1"})

			Convey("Then it is passed through", func() {
				So(r.version, ShouldEqual, "14.1.1")
			})
		})

		Convey("When the participant is invalid", func() {
			p := participant("me")
			p.Units = nil
			w := do(e, http.MethodPost, "/api/recap", gin.H{"participant": p})

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "units")
			})
		})

		Convey("When the board exceeds the unit cap", func() {
			p := participant("me")
			for len(p.Units) <= match.MaxUnits {
				p.Units = append(p.Units, p.Units[0])
			}
			w := do(e, http.MethodPost, "/api/recap", gin.H{"participant": p})

			Convey("Then it is a bad request naming the units", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "more than 13")
			})
		})

		Convey("When the body exceeds the size limit", func() {
			padding := strings.Repeat("x", MaxBodyBytes)
			w := do(e, http.MethodPost, "/api/recap", gin.H{"participant": participant("me"), "padding": padding})

			Convey("Then it is rejected before rendering", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
				So(r.calls, ShouldEqual, 0)
			})
		})

		Convey("When an oversized match body is posted", func() {
			padding := strings.Repeat("x", MaxBodyBytes)
			w := do(e, http.MethodPost, "/api/recap/match", gin.H{"puuid": "me", "padding": padding})

			Convey("Then it is rejected as well", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
				So(r.calls, ShouldEqual, 0)
			})
		})

		Convey("When the body is not json", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/recap", strings.NewReader("{"))
			w := httptest.NewRecorder()
			e.ServeHTTP(w, req)

			Convey("Then it is a bad request and nothing is rendered", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(r.calls, ShouldEqual, 0)
			})
		})

		Convey("When rendering is canceled", func() {
			r.err = context.Canceled
			w := do(e, http.MethodPost, "/api/recap", gin.H{"participant": participant("me")})

			Convey("Then the service is unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}

func TestRecapMatch(t *testing.T) {
	Convey("Given a match of two players", t, func() {
		r := &fakeRenderer{}
		e, _ := newTestEngine(r)
		m := match.Match{Info: match.Info{Participants: []match.Participant{participant("a"), participant("b")}}}

		Convey("When a member is requested", func() {
			w := do(e, http.MethodPost, "/api/recap/match", gin.H{"puuid": "b", "match": m})

			Convey("Then the recap is rendered", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(r.calls, ShouldEqual, 1)
			})
		})

		Convey("When a stranger is requested", func() {
			w := do(e, http.MethodPost, "/api/recap/match", gin.H{"puuid": "z", "match": m})

			Convey("Then it is not found and nothing is rendered", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(r.calls, ShouldEqual, 0)
			})
		})

		Convey("When the match is missing", func() {
			w := do(e, http.MethodPost, "/api/recap/match", gin.H{"puuid": "a"})

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestQR(t *testing.T) {
	Convey("Given the share QR endpoint", t, func() {
		e, _ := newTestEngine(&fakeRenderer{})

		Convey("When a size is requested", func() {
			w := do(e, http.MethodGet, "/api/match/EUW1_42/qr?size=128", nil)

			Convey("Then a PNG of that size is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				img, err := png.Decode(w.Body)
				So(err, ShouldBeNil)
				So(img.Bounds().Dx(), ShouldEqual, 128)
			})
		})

		Convey("When the size is garbage", func() {
			w := do(e, http.MethodGet, "/api/match/EUW1_42/qr?size=big", nil)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestMetricsEndpoint(t *testing.T) {
	Convey("Given served requests", t, func() {
		e, _ := newTestEngine(&fakeRenderer{})
		do(e, http.MethodGet, "/api/health", nil)
		w := do(e, http.MethodGet, "/metrics", nil)

		Convey("Then they are exposed on /metrics", func() {
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `recap_http_requests_total{endpoint="/api/health",method="GET",status="200"} 1`)
		})
	})
}
