package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	paymentUsecases "github.com/sandpay-io/sandpay/internal/application/payment/usecases"
	"github.com/sandpay-io/sandpay/internal/application/payment/simulation"
	"github.com/sandpay-io/sandpay/internal/shared/biztime"
	"github.com/sandpay-io/sandpay/internal/shared/logger"
	"github.com/sandpay-io/sandpay/internal/shared/utils"
)

type PaymentHandler struct {
	processPaymentUC *paymentUsecases.ProcessPaymentUseCase
	logger           logger.Interface
}

func NewPaymentHandler(processPaymentUC *paymentUsecases.ProcessPaymentUseCase, logger logger.Interface) *PaymentHandler {
	return &PaymentHandler{
		processPaymentUC: processPaymentUC,
		logger:           logger,
	}
}

type CardRequest struct {
	Number      string `json:"number" binding:"required"`
	HolderName  string `json:"holder_name"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

type ProcessPaymentRequest struct {
	OrderID        string       `json:"order_id" binding:"required"`
	AmountInPaisa  int64        `json:"amount_in_paisa" binding:"required,gt=0"`
	Currency       string       `json:"currency"`
	PaymentMethod  string       `json:"payment_method" binding:"required,oneof=card upi netbanking wallet"`
	Card           *CardRequest `json:"card"`
	UPIID          string       `json:"upi_id"`
	Bank           string       `json:"bank"`
	WalletProvider string       `json:"wallet_provider"`
}

type ProcessPaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
	OrderStatus   string `json:"order_status"`
	ReturnURL     string `json:"return_url,omitempty"`
	Timestamp     string `json:"timestamp"`
}

// ProcessPayment drives the order lifecycle. The response is returned as
// soon as the transition is recorded; webhook delivery continues in the
// background.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, bindingError(err))
		return
	}

	cmd := paymentUsecases.ProcessPaymentCommand{
		GatewayOrderID: req.OrderID,
		AmountInPaisa:  req.AmountInPaisa,
		Currency:       req.Currency,
		PaymentMethod:  req.PaymentMethod,
		Details: simulation.Details{
			UPIID:          req.UPIID,
			Bank:           req.Bank,
			WalletProvider: req.WalletProvider,
		},
	}
	if req.Card != nil {
		cmd.Details.Card = &simulation.CardDetails{
			Number:      req.Card.Number,
			HolderName:  req.Card.HolderName,
			ExpiryMonth: req.Card.ExpiryMonth,
			ExpiryYear:  req.Card.ExpiryYear,
			CVV:         req.Card.CVV,
		}
	}

	result, err := h.processPaymentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	txn := result.Transaction
	utils.SuccessResponse(c, http.StatusOK, "", ProcessPaymentResponse{
		TransactionID: txn.ID(),
		OrderID:       txn.OrderID(),
		Status:        txn.Status().String(),
		FailureReason: txn.FailureReason(),
		OrderStatus:   result.OrderStatus.String(),
		ReturnURL:     result.ReturnURL,
		Timestamp:     biztime.FormatRFC3339(txn.Timestamp()),
	})
}
