package services

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/config"
)

// makeUpload 构造一个携带PNG图片的multipart文件头
func makeUpload(t *testing.T, filename string, width, height int) *multipart.FileHeader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(imgBuf.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/admin/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	_, header, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	return header
}

func imageServiceForTest(t *testing.T) (*config.Config, InterfaceImageService) {
	t.Helper()
	cfg := &config.Config{UploadsDir: t.TempDir()}
	return cfg, NewImageService(cfg)
}

func TestProcessAndStoreShrinksLargeImage(t *testing.T) {
	cfg, svc := imageServiceForTest(t)
	header := makeUpload(t, "big.png", 1200, 600)

	url, err := svc.ProcessAndStore(header)
	if err != nil {
		t.Fatalf("ProcessAndStore: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/image-") || !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q", url)
	}

	f, err := os.Open(filepath.Join(cfg.UploadsDir, filepath.Base(url)))
	if err != nil {
		t.Fatalf("open stored image: %v", err)
	}
	defer f.Close()

	stored, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode stored image: %v", err)
	}
	bounds := stored.Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 400 {
		t.Errorf("stored size = %dx%d, want 800x400", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessAndStoreKeepsSmallImage(t *testing.T) {
	cfg, svc := imageServiceForTest(t)
	header := makeUpload(t, "small.png", 100, 50)

	url, err := svc.ProcessAndStore(header)
	if err != nil {
		t.Fatalf("ProcessAndStore: %v", err)
	}

	f, err := os.Open(filepath.Join(cfg.UploadsDir, filepath.Base(url)))
	if err != nil {
		t.Fatalf("open stored image: %v", err)
	}
	defer f.Close()

	stored, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode stored image: %v", err)
	}
	bounds := stored.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 50 {
		t.Errorf("stored size = %dx%d, want 100x50", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessAndStoreRejectsUnknownExtension(t *testing.T) {
	_, svc := imageServiceForTest(t)
	header := makeUpload(t, "drawing.gif", 10, 10)

	_, err := svc.ProcessAndStore(header)
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("err = %v, want ErrUnsupportedImage", err)
	}
}

func TestSaveOriginalKeepsBytes(t *testing.T) {
	cfg, svc := imageServiceForTest(t)
	header := makeUpload(t, "original.png", 1200, 600)

	url, err := svc.SaveOriginal(header)
	if err != nil {
		t.Fatalf("SaveOriginal: %v", err)
	}

	f, err := os.Open(filepath.Join(cfg.UploadsDir, filepath.Base(url)))
	if err != nil {
		t.Fatalf("open stored image: %v", err)
	}
	defer f.Close()

	stored, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode stored image: %v", err)
	}
	bounds := stored.Bounds()
	if bounds.Dx() != 1200 || bounds.Dy() != 600 {
		t.Errorf("stored size = %dx%d, original should not be resized", bounds.Dx(), bounds.Dy())
	}
}
