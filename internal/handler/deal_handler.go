package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cre-commission-api/internal/constant"
	"cre-commission-api/internal/dto"
	"cre-commission-api/internal/service"
	"cre-commission-api/internal/utils"
)

type DealHandler struct{ svc *service.DealService }

func NewDealHandler() *DealHandler { return &DealHandler{svc: service.NewDealService()} }

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return 0, false
	}
	return id, true
}

func (h *DealHandler) Create(c *gin.Context) {
	var cmd dto.CreateDealCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	vo, err := h.svc.CreateDeal(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(vo))
}

func (h *DealHandler) UpdateFinancials(c *gin.Context) {
	var cmd dto.UpdateDealFinancialsCmd
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeBadRequest))
		return
	}
	sum, err := h.svc.UpdateDealFinancials(cmd)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(sum))
}

func (h *DealHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "dealId")
	if !ok {
		return
	}
	vo, err := h.svc.GetDeal(id)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(vo))
}

func (h *DealHandler) ListSplits(c *gin.Context) {
	id, ok := parseID(c, "dealId")
	if !ok {
		return
	}
	splits, err := h.svc.ListCommissionSplits(id)
	if err != nil {
		c.JSON(http.StatusOK, utils.FromError(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(splits))
}
