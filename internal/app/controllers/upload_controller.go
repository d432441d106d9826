package controllers

import (
	"errors"
	"strconv"

	"github.com/lolollllo/plushofaddu-backend/internal/domain/services"
	"github.com/lolollllo/plushofaddu-backend/internal/domain/services/container"
	"github.com/lolollllo/plushofaddu-backend/internal/error/code"
	"github.com/lolollllo/plushofaddu-backend/internal/error/response"

	"github.com/gin-gonic/gin"
)

// 多图上传单次最多接受的文件数
const maxImagesPerUpload = 5

// InterfaceUploadController 定义图片上传控制器接口
type InterfaceUploadController interface {
	UploadImage()
	UploadImages()
	UploadItemImage()
}

// UploadController 图片上传控制器
type UploadController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUploadController 创建一个新的图片上传控制器
func NewUploadController(ctx *gin.Context, container *container.ServiceContainer) *UploadController {
	return &UploadController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleUploadFunc 返回一个处理图片上传请求的Gin处理函数
func HandleUploadFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUploadController(ctx, container)

		switch method {
		case "uploadImage":
			controller.UploadImage()
		case "uploadImages":
			controller.UploadImages()
		case "uploadItemImage":
			controller.UploadItemImage()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// imageService 获取图片服务实例
func (c *UploadController) imageService() services.InterfaceImageService {
	return c.Container.GetService("image").(services.InterfaceImageService)
}

// 1. UploadImage 上传单张图片
// @Summary      上传单张图片
// @Description  上传图片并缩放到 800x800 以内，返回可访问的URL
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "图片文件"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/items/upload-image [post]
// @Security     BearerAuth
func (c *UploadController) UploadImage() {
	file, err := c.Ctx.FormFile("image")
	if err != nil {
		response.ParamError(c.Ctx, "No file uploaded")
		return
	}

	url, err := c.imageService().ProcessAndStore(file)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedImage) {
			response.Fail(c.Ctx, code.ErrUnsupportedImage)
			return
		}
		response.Fail(c.Ctx, code.ErrImageProcess)
		return
	}

	response.Success(c.Ctx, gin.H{"url": url})
}

// 2. UploadImages 批量上传图片
// @Summary      批量上传图片
// @Description  一次最多上传5张，按原样保存并返回URL列表
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        images formData file true "图片文件（可多个）"
// @Success      200  {object}  map[string][]string
// @Failure      400  {object}  map[string]string
// @Router       /admin/items/upload-images [post]
// @Security     BearerAuth
func (c *UploadController) UploadImages() {
	form, err := c.Ctx.MultipartForm()
	if err != nil {
		response.ParamError(c.Ctx, "Upload failed")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		response.Success(c.Ctx, gin.H{"urls": []string{}})
		return
	}
	if len(files) > maxImagesPerUpload {
		response.ParamError(c.Ctx, "Too many files")
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := c.imageService().SaveOriginal(file)
		if err != nil {
			response.Fail(c.Ctx, code.ErrImageProcess)
			return
		}
		urls = append(urls, url)
	}

	response.Success(c.Ctx, gin.H{"urls": urls})
}

// 3. UploadItemImage 上传商品图片
// @Summary      上传商品图片
// @Description  上传并缩放图片，同时记录为指定商品的图集图片
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "商品ID"
// @Param        image formData file true "图片文件"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/items/{id}/upload-image [post]
// @Security     BearerAuth
func (c *UploadController) UploadItemImage() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid item ID")
		return
	}

	file, err := c.Ctx.FormFile("image")
	if err != nil {
		response.ParamError(c.Ctx, "No file uploaded")
		return
	}

	url, err := c.imageService().ProcessAndStore(file)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedImage) {
			response.Fail(c.Ctx, code.ErrUnsupportedImage)
			return
		}
		response.Fail(c.Ctx, code.ErrImageProcess)
		return
	}

	itemService := c.Container.GetService("item").(services.InterfaceItemService)
	if err := itemService.AddItemImage(uint(id), url); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			response.FailWithMessage(c.Ctx, code.ErrItemNotFound, "")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	response.Success(c.Ctx, gin.H{"url": url})
}
