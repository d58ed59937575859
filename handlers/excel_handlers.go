package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

// ExportWorkbook handles GET /export
func (h *Handler) ExportWorkbook(c *gin.Context) {
	excelFile, filename, err := h.svc.Excel.Export(c.Request.Context(), ownerID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer excelFile.Close()

	// Set headers for file download
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := excelFile.Write(c.Writer); err != nil {
		h.svc.Logger.WithError(err).Error("Failed to write Excel file")
		utils.HandleError(c, utils.NewInternalError("Failed to write Excel file"))
	}
}
