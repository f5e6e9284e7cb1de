package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/dto"
)

// transferHandler handles HTTP requests for transfer lookups. Transfers are
// created through the account routes; this handler only reads them back.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers routes related to transfers.
func registerTransferRoutes(rg *gin.RouterGroup, ts portssvc.TransferSvcFacade) {
	h := newTransferHandler(ts)

	transfers := rg.Group("/transfers")
	{
		transfers.GET("/:id", h.getTransfer)
	}
}

// getTransfer godoc
// @Summary Get a transfer by ID
// @Description Returns the transfer and its two movement legs.
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{id} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	transfer, out, in, err := h.transferService.GetTransferByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer, out, in))
}
