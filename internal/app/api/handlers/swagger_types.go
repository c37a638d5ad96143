package handlers

import (
	"github.com/fatflowers/gateway/internal/app/service/paymentlist"
	"github.com/fatflowers/gateway/internal/app/service/payments"
	"github.com/fatflowers/gateway/internal/app/service/statistics"
	"github.com/fatflowers/gateway/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespPayment wraps a PaymentsResponse in the standard envelope.
type RespPayment struct {
	Code    response.APIResponseCode  `json:"code"`
	Message string                    `json:"message"`
	Data    payments.PaymentsResponse `json:"data"`
}

// RespListPayments wraps the admin payment listing in the standard envelope.
type RespListPayments struct {
	Code    response.APIResponseCode         `json:"code"`
	Message string                           `json:"message"`
	Data    paymentlist.ScanPaymentsResponse `json:"data"`
}

// RespPaymentStatistic wraps PaymentStatisticResponse in the standard envelope.
type RespPaymentStatistic struct {
	Code    response.APIResponseCode            `json:"code"`
	Message string                              `json:"message"`
	Data    statistics.PaymentStatisticResponse `json:"data"`
}
