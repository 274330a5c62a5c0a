package media

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	"storefront.GO/config"
	"storefront.GO/core/cache"
)

func init() {
	api.RegisterRoute(RegisterMediaRoutes)
}

const resizedCacheTTLSeconds = 3600

var contentTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

// RegisterMediaRoutes serves files from the media directory. Optional
// query parameters resize (?w=, ?h=) and convert (?format=webp) on the
// fly; resized output is cached.
func RegisterMediaRoutes(e *echo.Echo, _ *gorm.DB) {
	e.GET("/media/*", handleMedia)
}

func mediaRoot() string {
	if config.AppConfig != nil && config.AppConfig.MediaDir != "" {
		return config.AppConfig.MediaDir
	}
	return "media"
}

func intParam(c echo.Context, name string) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func handleMedia(c echo.Context) error {
	// Clean with a leading slash so ".." cannot escape the media root.
	rel := filepath.Clean("/" + c.Param("*"))
	full := filepath.Join(mediaRoot(), rel)

	width := intParam(c, "w")
	height := intParam(c, "h")
	format := strings.ToLower(c.QueryParam("format"))

	if width == 0 && height == 0 && format == "" {
		return c.File(full)
	}

	cacheKey := fmt.Sprintf("media:%s:%dx%d:%s", rel, width, height, format)
	contentType := "image/webp"
	if format != "webp" {
		f, err := imaging.FormatFromFilename(full)
		if err != nil {
			f = imaging.JPEG
		}
		contentType = contentTypes[f]
	}

	if cached, ok := cache.GetInstance().Get(cacheKey); ok {
		if body, isBytes := cached.([]byte); isBytes {
			c.Response().Header().Set("X-Media-Cache", "hit")
			return c.Blob(http.StatusOK, contentType, body)
		}
	}

	img, err := imaging.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "media not found"})
		}
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	if width > 0 || height > 0 {
		// A zero dimension keeps the aspect ratio.
		img = imaging.Resize(img, width, height, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if format == "webp" {
		err = webp.Encode(&buf, img, &webp.Options{Quality: 85})
	} else {
		f, ferr := imaging.FormatFromFilename(full)
		if ferr != nil {
			f = imaging.JPEG
		}
		err = imaging.Encode(&buf, img, f)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	cache.GetInstance().Set(cacheKey, buf.Bytes(), resizedCacheTTLSeconds, []string{"media"})
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
