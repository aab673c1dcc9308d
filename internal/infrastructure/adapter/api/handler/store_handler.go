package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/cnab-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/api/dto"
)

// StoreHandler handles store balance and statement requests
type StoreHandler struct {
	storeUseCase usecase.StoreUseCase
	logger       coreport.Logger
}

// NewStoreHandler creates a new store handler instance
func NewStoreHandler(storeUseCase usecase.StoreUseCase, logger coreport.Logger) *StoreHandler {
	return &StoreHandler{
		storeUseCase: storeUseCase,
		logger:       logger,
	}
}

// ListBalances handles GET /api/v1/stores
func (h *StoreHandler) ListBalances(c *gin.Context) {
	balances, err := h.storeUseCase.ListBalances(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStoreBalancesResponse(balances))
}

// GetStatement handles GET /api/v1/stores/:id/statement
func (h *StoreHandler) GetStatement(c *gin.Context) {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || storeID == 0 {
		_ = c.Error(fmt.Errorf("%w: invalid store id format", errs.ErrInvalidRequest))
		return
	}

	statement, err := h.storeUseCase.GetStatement(c.Request.Context(), storeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatementResponse(statement))
}
