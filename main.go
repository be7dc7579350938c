package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"cre-commission-api/internal/config"
	"cre-commission-api/internal/dal"
	"cre-commission-api/internal/handler"
	"cre-commission-api/internal/idgen"
	"cre-commission-api/internal/logger"
	"cre-commission-api/internal/middleware"
	"cre-commission-api/internal/shard"
)

func main() {
	// load config env
	config.Init()
	logger.Init()

	// init infra
	dal.InitMainDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen + audit shard engine
	idgen.Init(1)
	shard.InitShardEngines(config.C.Audit.Shards)

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	// command payloads are explicit structs, stray fields are caller bugs
	gin.EnableJsonDecoderDisallowUnknownFields()
	r := gin.New()
	r.Use(middleware.Recover(), middleware.RequestLog())

	v1 := r.Group("/api/v1")
	{
		dh := handler.NewDealHandler()
		v1.POST("/deals", middleware.AuthHMAC(), dh.Create)
		v1.POST("/deals/financials", middleware.AuthHMAC(), dh.UpdateFinancials)
		v1.GET("/deals/:dealId", dh.Get)
		v1.GET("/deals/:dealId/splits", dh.ListSplits)

		ch := handler.NewCommissionHandler()
		v1.POST("/brokers", middleware.AuthHMAC(), ch.AddBroker)
		v1.POST("/brokers/remove", middleware.AuthHMAC(), ch.RemoveBroker)
		v1.POST("/splits/percentage", middleware.AuthHMAC(), ch.SetPercentage)
		v1.GET("/deals/:dealId/totals", ch.ValidateTotals)

		ph := handler.NewPaymentHandler()
		v1.POST("/deals/:dealId/sync", middleware.AuthHMAC(), ph.Sync)
		v1.GET("/deals/:dealId/payments", ph.ListByDeal)
		v1.GET("/payments/:paymentId", ph.Get)
		v1.POST("/payments/approve", middleware.AuthHMAC(), ph.Approve)
		v1.POST("/payments/revert", middleware.AuthHMAC(), ph.Revert)
		v1.POST("/payments/disburse", middleware.AuthHMAC(), ph.Disburse)
		v1.POST("/payments/amount", middleware.AuthHMAC(), ph.OverrideAmount)
		v1.POST("/payments/received", middleware.AuthHMAC(), ph.ToggleReceived)
		v1.POST("/payments/referral-paid", middleware.AuthHMAC(), ph.ToggleReferralPaid)
		v1.POST("/payments/delete", middleware.AuthHMAC(), ph.Delete)
		v1.POST("/payment-splits/override", middleware.AuthHMAC(), ph.OverrideSplit)
		v1.POST("/payment-splits/clear-override", middleware.AuthHMAC(), ph.ClearOverride)
		v1.POST("/payment-splits/paid", middleware.AuthHMAC(), ph.TogglePaid)
		v1.GET("/payment-splits/:splitId/audit", ph.SplitAudit)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
