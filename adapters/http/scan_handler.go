package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	scanUC "github.com/aislescan/aislescan-api/internal/application/usecase/scan"
	"github.com/aislescan/aislescan-api/pkg/apperror"
)

type ScanHandler struct {
	saveScanUseCase  *scanUC.SaveScanUseCase
	listScansUseCase *scanUC.ListScansUseCase
	getScanUseCase   *scanUC.GetScanUseCase
	scanStatsUseCase *scanUC.ScanStatsUseCase
}

func NewScanHandler(
	saveUC *scanUC.SaveScanUseCase,
	listUC *scanUC.ListScansUseCase,
	getUC *scanUC.GetScanUseCase,
	statsUC *scanUC.ScanStatsUseCase,
) *ScanHandler {
	return &ScanHandler{
		saveScanUseCase:  saveUC,
		listScansUseCase: listUC,
		getScanUseCase:   getUC,
		scanStatsUseCase: statsUC,
	}
}

func (h *ScanHandler) SaveScan(c *gin.Context) {
	u, ok := CurrentUser(c)
	if !ok {
		c.Error(apperror.NewInternal("current user missing from context", nil))
		return
	}

	var req SaveScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("Invalid scan body", err.Error()))
		return
	}

	input := scanUC.SaveScanInput{
		UserID:       u.ID,
		ProductName:  req.ProductName,
		ImageURI:     req.ImageURI,
		AnalysisData: req.AnalysisData,
	}
	output, err := h.saveScanUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"scan":    ToScanDTO(output.Scan),
	})
}

func (h *ScanHandler) ListScans(c *gin.Context) {
	u, ok := CurrentUser(c)
	if !ok {
		c.Error(apperror.NewInternal("current user missing from context", nil))
		return
	}

	input := scanUC.ListScansInput{UserID: u.ID}
	output, err := h.listScansUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"scans":   ToScanDTOs(output.Scans),
	})
}

func (h *ScanHandler) GetScan(c *gin.Context) {
	u, ok := CurrentUser(c)
	if !ok {
		c.Error(apperror.NewInternal("current user missing from context", nil))
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("Invalid scan id", err.Error()))
		return
	}

	input := scanUC.GetScanInput{ScanID: scanID, UserID: u.ID}
	output, err := h.getScanUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"scan":    ToScanDTO(output.Scan),
	})
}

func (h *ScanHandler) ScanStats(c *gin.Context) {
	u, ok := CurrentUser(c)
	if !ok {
		c.Error(apperror.NewInternal("current user missing from context", nil))
		return
	}

	input := scanUC.ScanStatsInput{UserID: u.ID}
	output, err := h.scanStatsUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"totalScans": output.TotalScans,
		},
	})
}
