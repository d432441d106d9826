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

// InterfaceOrderController 定义订单控制器接口
type InterfaceOrderController interface {
	PlaceOrder()
	TrackOrder()
	GetOrders()
	CreateOrder()
	UpdateOrderStatus()
	DeleteOrder()
}

// OrderController 订单控制器
type OrderController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewOrderController 创建一个新的订单控制器
func NewOrderController(ctx *gin.Context, container *container.ServiceContainer) *OrderController {
	return &OrderController{
		Ctx:       ctx,
		Container: container,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	CustomerName   string             `json:"customer_name" example:"Aishath"`
	Instagram      string             `json:"instagram" example:"@aishath"`
	Phone          string             `json:"phone" example:"+9607771234"`
	DeliveryMethod string             `json:"delivery_method" binding:"required,oneof=pickup delivery" example:"pickup"`
	PaymentMethod  string             `json:"payment_method" binding:"required,oneof=transfer cash" example:"transfer"`
	DeliveryCharge float64            `json:"delivery_charge" example:"5"`
	OrderItems     []OrderItemRequest `json:"orderItems"`
}

// OrderItemRequest 订单行请求
type OrderItemRequest struct {
	ItemID   uint `json:"item_id" example:"1"`
	Quantity int  `json:"quantity" example:"2"`
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" example:"shipped"`
}

// HandleOrderFunc 返回一个处理订单请求的Gin处理函数
func HandleOrderFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewOrderController(ctx, container)

		switch method {
		case "placeOrder":
			controller.PlaceOrder()
		case "trackOrder":
			controller.TrackOrder()
		case "getOrders":
			controller.GetOrders()
		case "createOrder":
			controller.CreateOrder()
		case "updateOrderStatus":
			controller.UpdateOrderStatus()
		case "deleteOrder":
			controller.DeleteOrder()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// orderService 获取订单服务实例
func (c *OrderController) orderService() services.InterfaceOrderService {
	return c.Container.GetService("order").(services.InterfaceOrderService)
}

// placeOrder 公开下单和后台代客下单共用的流程，仅回执消息不同
func (c *OrderController) placeOrder(successMessage string) {
	var req PlaceOrderRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "Invalid request parameters: "+err.Error())
		return
	}

	lines := make([]services.OrderItemParams, 0, len(req.OrderItems))
	for _, line := range req.OrderItems {
		lines = append(lines, services.OrderItemParams{ItemID: line.ItemID, Quantity: line.Quantity})
	}

	confirmation, err := c.orderService().PlaceOrder(&services.PlaceOrderParams{
		CustomerName:   req.CustomerName,
		Instagram:      req.Instagram,
		Phone:          req.Phone,
		DeliveryMethod: req.DeliveryMethod,
		PaymentMethod:  req.PaymentMethod,
		DeliveryCharge: req.DeliveryCharge,
		OrderItems:     lines,
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

	confirmation.Message = successMessage
	response.Success(c.Ctx, confirmation)
}

// 1. PlaceOrder 顾客下单
// @Summary      顾客下单
// @Description  公开下单接口，校验联系方式并生成追踪码，返回含运费的总价
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        request body PlaceOrderRequest true "订单信息"
// @Success      200  {object}  services.OrderConfirmation
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /orders [post]
func (c *OrderController) PlaceOrder() {
	c.placeOrder("Your order has been confirmed!")
}

// 2. TrackOrder 追踪订单
// @Summary      追踪订单
// @Description  按追踪码查询订单，查不到返回 found=false 而不是错误
// @Tags         Order
// @Produce      json
// @Param        trackingId path string true "追踪码"
// @Success      200  {object}  services.TrackResult
// @Router       /track/{trackingId} [get]
func (c *OrderController) TrackOrder() {
	result, err := c.orderService().TrackOrder(c.Ctx.Param("trackingId"))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	response.Success(c.Ctx, result)
}

// 3. GetOrders 获取订单列表
// @Summary      获取订单列表
// @Description  返回全部订单（新的在前），每笔订单附带商品摘要
// @Tags         Order
// @Produce      json
// @Success      200  {array}   services.OrderWithItems
// @Failure      500  {object}  map[string]string
// @Router       /admin/orders [get]
// @Security     BearerAuth
func (c *OrderController) GetOrders() {
	orders, err := c.orderService().GetAllOrders()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	response.Success(c.Ctx, orders)
}

// 4. CreateOrder 后台代客下单
// @Summary      后台代客下单
// @Description  管理员录入订单，流程与公开下单一致
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        request body PlaceOrderRequest true "订单信息"
// @Success      200  {object}  services.OrderConfirmation
// @Failure      400  {object}  map[string]string
// @Router       /admin/orders [post]
// @Security     BearerAuth
func (c *OrderController) CreateOrder() {
	c.placeOrder("Order created successfully")
}

// 5. UpdateOrderStatus 更新订单状态
// @Summary      更新订单状态
// @Description  无条件覆盖状态字段，接受任意字符串
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        id path int true "订单ID"
// @Param        request body UpdateOrderStatusRequest true "新状态"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /admin/orders/{id}/status [post]
// @Security     BearerAuth
func (c *OrderController) UpdateOrderStatus() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || req.Status == "" {
		response.ParamError(c.Ctx, "Status is required")
		return
	}

	if err := c.orderService().UpdateOrderStatus(uint(id), req.Status); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			response.FailWithMessage(c.Ctx, code.ErrOrderNotFound, "")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	response.Success(c.Ctx, gin.H{"success": true})
}

// 6. DeleteOrder 删除订单
// @Summary      删除订单
// @Description  删除订单及其全部订单行
// @Tags         Order
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /admin/orders/{id} [delete]
// @Security     BearerAuth
func (c *OrderController) DeleteOrder() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "Invalid order ID")
		return
	}

	if err := c.orderService().DeleteOrder(uint(id)); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			response.FailWithMessage(c.Ctx, code.ErrOrderNotFound, "")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error())
		return
	}

	response.Success(c.Ctx, gin.H{"success": true, "message": "Order deleted"})
}
