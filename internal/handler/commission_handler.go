package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cre-commission-api/internal/constant"
	"cre-commission-api/internal/dto"
	"cre-commission-api/internal/service"
	"cre-commission-api/internal/utils"
)

type CommissionHandler struct{ svc *service.CommissionService }

func NewCommissionHandler() *CommissionHandler {
	return &CommissionHandler{svc: service.NewCommissionService()}
}

func (h *CommissionHandler) AddBroker(c *gin.Context) {
	var cmd dto.AddBrokerCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	res, err := h.svc.AddBroker(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(res))
}

func (h *CommissionHandler) RemoveBroker(c *gin.Context) {
	var cmd dto.RemoveBrokerCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	sum, err := h.svc.RemoveBroker(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(sum))
}

func (h *CommissionHandler) SetPercentage(c *gin.Context) {
	var cmd dto.SetSplitPercentageCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	res, err := h.svc.SetSplitPercentage(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(res))
}

func (h *CommissionHandler) ValidateTotals(c *gin.Context) {
	id, ok := parseID(c, "dealId")
	if !ok {
		return
	}
	report, err := h.svc.ValidateTotals(id)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(report))
}
