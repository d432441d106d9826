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

// InterfaceItemController 定义商品控制器接口
type InterfaceItemController interface {
	GetItems()
	GetItem()
	CreateItem()
	UpdateItem()
}

// ItemController 商品控制器
type ItemController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewItemController 创建一个新的商品控制器
func NewItemController(ctx *gin.Context, container *container.ServiceContainer) *ItemController {
	return &ItemController{
		Ctx:       ctx,
		Container: container,
	}
}

// ItemRequest 创建/更新商品请求。price 和 stock 兼容数字和字符串两种写法
type ItemRequest struct {
	Name        string      `json:"name" example:"Bear"`
	Price       interface{} `json:"price" swaggertype:"number" example:"19.99"`
	ImageURL    string      `json:"image_url" example:"/uploads/bear.jpg"`
	Description string      `json:"description" example:"Soft plush bear"`
	Stock       interface{} `json:"stock" swaggertype:"integer" example:"3"`
	Images      []string    `json:"images"`
}

// HandleItemFunc 返回一个处理商品请求的Gin处理函数
func HandleItemFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewItemController(ctx, container)

		switch method {
		case "getItems":
			controller.GetItems()
		case "getItem":
			controller.GetItem()
		case "createItem":
			controller.CreateItem()
		case "updateItem":
			controller.UpdateItem()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// itemService 获取商品服务实例
func (c *ItemController) itemService() services.InterfaceItemService {
	return c.Container.GetService("item").(services.InterfaceItemService)
}

// 1. GetItems 获取商品列表
// @Summary      获取商品列表
// @Description  返回全部商品，每个商品附带图集第一张作为预览图
// @Tags         Item
// @Produce      json
// @Success      200  {array}   services.ItemWithPreview
// @Failure      500  {object}  map[string]string
// @Router       /items [get]
func (c *ItemController) GetItems() {
	items, err := c.itemService().GetAllItems()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	response.Success(c.Ctx, items)
}

// 2. GetItem 获取商品详情
// @Summary      获取商品详情
// @Description  根据ID获取商品及其全部图片
// @Tags         Item
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [get]
func (c *ItemController) GetItem() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid item ID")
		return
	}

	item, images, err := c.itemService().GetItemByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			response.FailWithMessage(c.Ctx, code.ErrItemNotFound, "")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	if images == nil {
		images = []string{}
	}
	response.Success(c.Ctx, gin.H{
		"id":          item.ID,
		"name":        item.Name,
		"price":       item.Price,
		"image_url":   item.ImageURL,
		"status":      item.Status,
		"description": item.Description,
		"stock":       item.Stock,
		"created_at":  item.CreatedAt,
		"images":      images,
	})
}

// 3. CreateItem 创建商品
// @Summary      创建商品
// @Description  创建新商品，价格四舍五入到两位小数，状态由库存派生
// @Tags         Item
// @Accept       json
// @Produce      json
// @Param        request body ItemRequest true "商品信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/items [post]
// @Security     BearerAuth
func (c *ItemController) CreateItem() {
	var req ItemRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters: "+err.Error())
		return
	}

	item, err := c.itemService().CreateItem(&services.ItemParams{
		Name:        req.Name,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Stock:       req.Stock,
		Images:      req.Images,
	})
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			response.ParamError(c.Ctx, vErr.Message)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	response.Success(c.Ctx, gin.H{"success": true, "id": item.ID})
}

// 4. UpdateItem 更新商品
// @Summary      更新商品
// @Description  更新商品信息，校验规则与创建一致
// @Tags         Item
// @Accept       json
// @Produce      json
// @Param        id path int true "商品ID"
// @Param        request body ItemRequest true "商品信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/items/{id} [put]
// @Security     BearerAuth
func (c *ItemController) UpdateItem() {
	// 商品ID必须是正整数字面量
	idStr := c.Ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		response.ParamError(c.Ctx, "Invalid item ID")
		return
	}

	var req ItemRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters: "+err.Error())
		return
	}

	err = c.itemService().UpdateItem(uint(id), &services.ItemParams{
		Name:        req.Name,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Stock:       req.Stock,
		Images:      req.Images,
	})
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			response.ParamError(c.Ctx, vErr.Message)
		case errors.Is(err, services.ErrItemNotFound):
			response.FailWithMessage(c.Ctx, code.ErrItemNotFound, "")
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		}
		return
	}

	response.Success(c.Ctx, gin.H{"success": true})
}
