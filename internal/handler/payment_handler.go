package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cre-commission-api/internal/config"
	"cre-commission-api/internal/constant"
	"cre-commission-api/internal/dto"
	"cre-commission-api/internal/service"
	"cre-commission-api/internal/utils"
)

type PaymentHandler struct {
	svc  *service.PaymentService
	sync *service.SyncService
}

func NewPaymentHandler() *PaymentHandler {
	return &PaymentHandler{svc: service.NewPaymentService(), sync: service.NewSyncService()}
}

// Sync regenerates payment splits for a deal from its commission splits.
func (h *PaymentHandler) Sync(c *gin.Context) {
	id, ok := parseID(c, "dealId")
	if !ok {
		return
	}
	var body struct {
		ActorID uint64 `json:"actor_id"`
	}
	_ = c.ShouldBindJSON(&body)
	if body.ActorID == 0 {
		// manual sync without an explicit actor is attributed to ops
		body.ActorID, _ = config.BrokerForRole("operations")
	}
	sum, err := h.sync.AutoSyncPaymentSplits(id, body.ActorID)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(sum))
}

func (h *PaymentHandler) Approve(c *gin.Context) {
	var cmd dto.ApprovePaymentCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	if err := h.svc.Approve(cmd); err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func (h *PaymentHandler) Revert(c *gin.Context) {
	var cmd dto.RevertPaymentCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	if err := h.svc.Revert(cmd); err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func (h *PaymentHandler) Disburse(c *gin.Context) {
	var cmd dto.DisbursePaymentCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	p, err := h.svc.Disburse(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{
		"payment_id": p.PaymentID,
		"sync_id":    p.AccountingSyncID,
	}))
}

func (h *PaymentHandler) OverrideAmount(c *gin.Context) {
	var cmd dto.OverridePaymentAmountCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	sum, err := h.svc.OverridePaymentAmount(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(sum))
}

func (h *PaymentHandler) OverrideSplit(c *gin.Context) {
	var cmd dto.OverrideSplitAmountCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	ps, err := h.svc.OverrideSplitAmount(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(ps))
}

func (h *PaymentHandler) ClearOverride(c *gin.Context) {
	var cmd dto.ClearSplitOverrideCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	sum, err := h.svc.ClearSplitOverride(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(sum))
}

func (h *PaymentHandler) TogglePaid(c *gin.Context) {
	var cmd dto.TogglePaidCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	ps, err := h.svc.TogglePaid(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(ps))
}

func (h *PaymentHandler) ToggleReferralPaid(c *gin.Context) {
	var cmd dto.ToggleReferralPaidCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	p, err := h.svc.ToggleReferralPaid(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(p))
}

func (h *PaymentHandler) ToggleReceived(c *gin.Context) {
	var cmd dto.ToggleReceivedCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	p, err := h.svc.ToggleReceived(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(p))
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	var cmd dto.DeletePaymentCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	if err := h.svc.DeletePayment(cmd); err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "paymentId")
	if !ok {
		return
	}
	vo, err := h.svc.GetPayment(id)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(vo))
}

func (h *PaymentHandler) ListByDeal(c *gin.Context) {
	id, ok := parseID(c, "dealId")
	if !ok {
		return
	}
	vos, err := h.svc.ListDealPayments(id)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(vos))
}

func (h *PaymentHandler) SplitAudit(c *gin.Context) {
	id, ok := parseID(c, "splitId")
	if !ok {
		return
	}
	logs, err := h.svc.ListSplitAudit(id)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(logs))
}
