package services

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/config"
	"github.com/lolollllo/plushofaddu-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// 缩放后的最大边长。fit-inside 缩放只会缩小不会裁剪，也不放大小图
const maxImageDimension = 800

// InterfaceImageService 定义图片服务接口
type InterfaceImageService interface {
	ProcessAndStore(file *multipart.FileHeader) (string, error)
	SaveOriginal(file *multipart.FileHeader) (string, error)
}

// ImageService 提供图片处理和存储服务
type ImageService struct {
	Config *config.Config
}

// NewImageService 创建一个新的图片服务
func NewImageService(cfg *config.Config) InterfaceImageService {
	return &ImageService{Config: cfg}
}

// 1 ProcessAndStore 解码上传的图片，缩放到 800x800 以内后存盘，
// 返回对外可访问的 /uploads 路径
func (s *ImageService) ProcessAndStore(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	var img image.Image
	switch ext {
	case ".png":
		img, err = png.Decode(src)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(src)
	default:
		return "", ErrUnsupportedImage
	}
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	resized := resize.Thumbnail(maxImageDimension, maxImageDimension, img, resize.Lanczos3)

	filename := fmt.Sprintf("image-%d-%d%s", time.Now().UnixMilli(), utils.RandomSuffix(), ext)
	path := filepath.Join(s.Config.UploadsDir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if ext == ".png" {
		err = png.Encode(out, resized)
	} else {
		err = jpeg.Encode(out, resized, &jpeg.Options{Quality: 80})
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encode image: %w", err)
	}

	return "/uploads/" + filename, nil
}

// 2 SaveOriginal 多图上传路径：不缩放，按原样保存
func (s *ImageService) SaveOriginal(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := uuid.New().String() + ext
	path := filepath.Join(s.Config.UploadsDir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}

	_, err = io.Copy(out, src)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}

	return "/uploads/" + filename, nil
}
