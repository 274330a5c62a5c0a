package media

import (
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/labstack/echo/v4"

	"storefront.GO/config"
)

// writeTestPNG renders a 20x10 two-tone image under dir.
func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for x := 0; x < 20; x++ {
		for y := 0; y < 10; y++ {
			col := color.RGBA{R: 200, A: 255}
			if x >= 10 {
				col = color.RGBA{B: 200, A: 255}
			}
			img.Set(x, y, col)
		}
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func mediaTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	config.LoadAppConfig()
	config.AppConfig.MediaDir = t.TempDir()
	writeTestPNG(t, config.AppConfig.MediaDir, filepath.Join("catalog", "img.png"))

	e := echo.New()
	RegisterMediaRoutes(e, nil)
	return e
}

func doMedia(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// ---------- Serving ----------

func TestMediaAPI_ServesOriginal(t *testing.T) {
	e := mediaTestServer(t)

	rec := doMedia(e, "/media/catalog/img.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("bounds = %v, want 20x10", b)
	}
}

func TestMediaAPI_ResizeKeepsAspect(t *testing.T) {
	e := mediaTestServer(t)

	rec := doMedia(e, "/media/catalog/img.png?w=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("bounds = %v, want 10x5", b)
	}
}

func TestMediaAPI_WebpConversion(t *testing.T) {
	e := mediaTestServer(t)

	rec := doMedia(e, "/media/catalog/img.png?w=10&format=webp")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/webp" {
		t.Errorf("content type = %q, want image/webp", ct)
	}
	img, err := webp.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("bounds = %v, want 10x5", b)
	}
}

func TestMediaAPI_ResizeCached(t *testing.T) {
	e := mediaTestServer(t)

	first := doMedia(e, "/media/catalog/img.png?w=6")
	if first.Header().Get("X-Media-Cache") != "" {
		t.Error("first request should not be a cache hit")
	}
	second := doMedia(e, "/media/catalog/img.png?w=6")
	if second.Header().Get("X-Media-Cache") != "hit" {
		t.Error("second request should hit the resize cache")
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from rendered body")
	}
}

// ---------- Safety ----------

func TestMediaAPI_UnknownFile(t *testing.T) {
	e := mediaTestServer(t)

	if rec := doMedia(e, "/media/catalog/missing.png"); rec.Code != http.StatusNotFound {
		t.Errorf("plain status = %d, want 404", rec.Code)
	}
	if rec := doMedia(e, "/media/catalog/missing.png?w=4"); rec.Code != http.StatusNotFound {
		t.Errorf("resize status = %d, want 404", rec.Code)
	}
}

func TestMediaAPI_TraversalBlocked(t *testing.T) {
	e := mediaTestServer(t)
	secret := filepath.Join(filepath.Dir(config.AppConfig.MediaDir), "secret.txt")
	if err := os.WriteFile(secret, []byte("top secret"), 0o644); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	rec := doMedia(e, "/media/../secret.txt")
	if rec.Code == http.StatusOK {
		t.Fatalf("escaped the media root: %s", rec.Body.String())
	}
}
