package middlewares

import (
	"compress/gzip"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/labstack/echo/v4"
)

// gzipMinSize これより小さいレスポンスは圧縮しない
const gzipMinSize = 512

// Gzip 内部APIのJSONレスポンスを圧縮するミドルウェア
//
// WebSocketのハンドシェイクは圧縮対象外
func Gzip() echo.MiddlewareFunc {
	wrap, err := gziphandler.GzipHandlerWithOpts(
		gziphandler.ContentTypes([]string{echo.MIMEApplicationJSON}),
		gziphandler.CompressionLevel(gzip.BestSpeed),
		gziphandler.MinSize(gzipMinSize),
	)
	if err != nil {
		panic(err)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.IsWebSocket() {
				return next(c)
			}
			wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				res := c.Response()
				original := res.Writer
				c.SetRequest(r)
				res.Writer = w
				defer func() { res.Writer = original }()
				if err := next(c); err != nil {
					c.Error(err)
				}
			})).ServeHTTP(c.Response().Writer, c.Request())
			return nil
		}
	}
}
