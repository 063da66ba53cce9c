package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	orderUsecases "github.com/sandpay-io/sandpay/internal/application/order/usecases"
	"github.com/sandpay-io/sandpay/internal/domain/order"
	"github.com/sandpay-io/sandpay/internal/shared/biztime"
	apperrors "github.com/sandpay-io/sandpay/internal/shared/errors"
	"github.com/sandpay-io/sandpay/internal/shared/logger"
	"github.com/sandpay-io/sandpay/internal/shared/utils"
)

type OrderHandler struct {
	createOrderUC *orderUsecases.CreateOrderUseCase
	getOrderUC    *orderUsecases.GetOrderUseCase
	logger        logger.Interface
}

func NewOrderHandler(
	createOrderUC *orderUsecases.CreateOrderUseCase,
	getOrderUC *orderUsecases.GetOrderUseCase,
	logger logger.Interface,
) *OrderHandler {
	return &OrderHandler{
		createOrderUC: createOrderUC,
		getOrderUC:    getOrderUC,
		logger:        logger,
	}
}

type CreateOrderRequest struct {
	MerchantID      string                 `json:"merchant_id" binding:"required"`
	MerchantOrderID string                 `json:"merchant_order_id" binding:"required"`
	AmountInPaisa   int64                  `json:"amount_in_paisa" binding:"required,gt=0"`
	Currency        string                 `json:"currency"`
	CallbackURL     string                 `json:"callback_url" binding:"required,registeredurl"`
	ReturnURL       string                 `json:"return_url" binding:"omitempty,registeredurl"`
	TestMode        bool                   `json:"test_mode"`
	Metadata        map[string]interface{} `json:"metadata"`
}

type OrderResponse struct {
	GatewayOrderID    string                 `json:"gateway_order_id"`
	MerchantOrderID   string                 `json:"merchant_order_id"`
	Status            string                 `json:"status"`
	AmountInPaisa     int64                  `json:"amount_in_paisa"`
	Currency          string                 `json:"currency"`
	OneTimeOrderToken string                 `json:"one_time_order_token"`
	ReturnURL         string                 `json:"return_url,omitempty"`
	PaymentRef        string                 `json:"payment_ref,omitempty"`
	TestMode          bool                   `json:"test_mode"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt         string                 `json:"created_at"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, bindingError(err))
		return
	}

	cmd := orderUsecases.CreateOrderCommand{
		MerchantID:      req.MerchantID,
		MerchantOrderID: req.MerchantOrderID,
		AmountInPaisa:   req.AmountInPaisa,
		Currency:        req.Currency,
		CallbackURL:     req.CallbackURL,
		ReturnURL:       req.ReturnURL,
		TestMode:        req.TestMode,
		Metadata:        req.Metadata,
	}

	ord, err := h.createOrderUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.APIResponse{
		Success: true,
		Data:    toOrderResponse(ord),
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	gatewayOrderID := c.Param("order_id")

	ord, err := h.getOrderUC.Execute(c.Request.Context(), gatewayOrderID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toOrderResponse(ord))
}

func toOrderResponse(ord *order.Order) OrderResponse {
	resp := OrderResponse{
		GatewayOrderID:    ord.GatewayOrderID(),
		MerchantOrderID:   ord.MerchantOrderID(),
		Status:            ord.Status().String(),
		AmountInPaisa:     ord.Amount().AmountInPaisa(),
		Currency:          ord.Amount().Currency(),
		OneTimeOrderToken: ord.OrderToken(),
		ReturnURL:         ord.ReturnURL(),
		TestMode:          ord.TestMode(),
		Metadata:          ord.Metadata(),
		CreatedAt:         biztime.FormatRFC3339(ord.CreatedAt()),
	}
	if ref := ord.PaymentRef(); ref != nil {
		resp.PaymentRef = *ref
	}
	return resp
}

// bindingError maps gin binding failures to the gateway error taxonomy,
// preserving the stable ERR_URL_NOT_REGISTERED code for URL policy
// violations.
func bindingError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			if fe.Tag() == "registeredurl" {
				return apperrors.NewValidationError(apperrors.CodeURLNotRegistered,
					"callback and return URLs must be HTTPS or localhost", fe.Error())
			}
		}
	}
	return apperrors.NewValidationError(apperrors.CodeValidation, "invalid request", err.Error())
}
