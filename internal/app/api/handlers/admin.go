package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/gateway/internal/app/service/paymentlist"
	"github.com/fatflowers/gateway/internal/app/service/statistics"
	"github.com/fatflowers/gateway/pkg/response"
)

// @Summary      List Payments (Admin)
// @Description  Retrieves a paginated and filterable list of payment intents.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body paymentlist.ScanPaymentsRequest true "List payments request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespListPayments
// @Router       /api/v1/admin/list_payments [post]
func ApiListPayments(lister *paymentlist.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentlist.ScanPaymentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := lister.ScanPayments(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get Payment Statistics (Admin)
// @Description  Computes per-merchant payment statistics such as daily counts, settled volume, and status or connector breakdowns.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body statistics.PaymentStatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespPaymentStatistic
// @Router       /api/v1/admin/get_payment_statistics [post]
func ApiGetPaymentStatistics(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.PaymentStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetPaymentStatistics(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminPaymentRoutes(r gin.IRouter, lister *paymentlist.Service, stats *statistics.Service) {
	r.POST("/list_payments", ApiListPayments(lister))
	r.POST("/get_payment_statistics", ApiGetPaymentStatistics(stats))
}
