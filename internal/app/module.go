package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/gateway/internal/app/api/server"
	"github.com/fatflowers/gateway/internal/app/service/eventlog"
	"github.com/fatflowers/gateway/internal/app/service/paymentlist"
	"github.com/fatflowers/gateway/internal/app/service/payments"
	"github.com/fatflowers/gateway/internal/app/service/statistics"
	"github.com/fatflowers/gateway/internal/platform/connector"
	"github.com/fatflowers/gateway/internal/platform/db"
	"github.com/fatflowers/gateway/internal/repository"
	"github.com/fatflowers/gateway/pkg/config"
	"github.com/fatflowers/gateway/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	repository.Module,
	connector.Module,
	eventlog.Module,
	payments.Module,
	paymentlist.Module,
	statistics.Module,
)
