package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	mw "github.com/fatflowers/gateway/internal/app/api/middleware"
	"github.com/fatflowers/gateway/internal/app/service/payments"
	"github.com/fatflowers/gateway/internal/errs"
	"github.com/fatflowers/gateway/pkg/response"
)

func envelopeCode(err error) response.APIResponseCode {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		return response.APIResponseCodeBadRequest
	case errs.KindNotFound:
		return response.APIResponseCodeNotFound
	case errs.KindConflict:
		return response.APIResponseCodeConflict
	default:
		return response.APIResponseCodeError
	}
}

type paymentErrData struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func writePaymentErr(c *gin.Context, err error) {
	c.JSON(http.StatusOK, response.ErrorT(envelopeCode(err), paymentErrData{
		ErrorCode: errs.CodeOf(err),
		Message:   errs.PublicMessage(err),
	}))
}

// @Summary      Create Payment
// @Description  Creates a payment intent, optionally confirming it in the same call. Replaying a create for an existing payment_id resumes the stored payment instead of failing.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        api-key header string false "Merchant API key"
// @Param        request body payments.PaymentsRequest true "Payment create request"
// @Success      200  {object}  handlers.RespPayment
// @Router       /api/v1/payments [post]
func ApiCreatePayment(core *payments.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := mw.MerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthorized, "missing merchant"))
			return
		}

		var req payments.PaymentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := core.Run(c.Request.Context(), payments.PaymentCreate{}, merchant, &req)
		if err != nil {
			writePaymentErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Confirm Payment
// @Description  Confirms a previously created payment, driving it through authorization.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        api-key header string false "Merchant API key"
// @Param        payment_id path string true "Payment ID"
// @Param        request body payments.PaymentsRequest false "Confirm-time overrides"
// @Success      200  {object}  handlers.RespPayment
// @Router       /api/v1/payments/{payment_id}/confirm [post]
func ApiConfirmPayment(core *payments.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := mw.MerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthorized, "missing merchant"))
			return
		}

		var req payments.PaymentsRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
		}
		req.PaymentID = lo.ToPtr(c.Param("payment_id"))
		req.Confirm = lo.ToPtr(true)

		res, err := core.Run(c.Request.Context(), payments.PaymentConfirm{}, merchant, &req)
		if err != nil {
			writePaymentErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Retrieve Payment
// @Description  Returns the current state of a payment. Pass force_sync=true to refresh from the connector.
// @Tags         Payment
// @Produce      json
// @Param        api-key header string false "Merchant API key"
// @Param        payment_id path string true "Payment ID"
// @Param        force_sync query bool false "Refresh status from the connector"
// @Success      200  {object}  handlers.RespPayment
// @Router       /api/v1/payments/{payment_id} [get]
func ApiRetrievePayment(core *payments.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, ok := mw.MerchantFromContext(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthorized, "missing merchant"))
			return
		}

		req := payments.PaymentsRequest{
			PaymentID: lo.ToPtr(c.Param("payment_id")),
		}
		if c.Query("force_sync") == "true" {
			req.ForceSync = lo.ToPtr(true)
		}

		res, err := core.Run(c.Request.Context(), payments.PaymentStatus{}, merchant, &req)
		if err != nil {
			writePaymentErr(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterPaymentRoutes(r gin.IRouter, core *payments.Core) {
	r.POST("/payments", ApiCreatePayment(core))
	r.POST("/payments/:payment_id/confirm", ApiConfirmPayment(core))
	r.GET("/payments/:payment_id", ApiRetrievePayment(core))
}
