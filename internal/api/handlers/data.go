package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"data_service/internal/service"
)

const (
	msgInserted      = "Data inserted successfully"
	msgExists        = "Data already exists"
	msgDeleted       = "Data deleted successfully"
	msgNotFound      = "Data not found"
	msgNameRequired  = "Name is required"
	msgInternalError = "Internal server error"
)

// DataHandler 處理 /data 資源的請求
type DataHandler struct {
	dataService *service.DataService
	logger      logrus.FieldLogger
}

func NewDataHandler(dataService *service.DataService, logger logrus.FieldLogger) *DataHandler {
	return &DataHandler{dataService: dataService, logger: logger}
}

// CreateDataInput 定義新增資料請求的結構
type CreateDataInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateData 處理 POST /data
func (h *DataHandler) CreateData(c *gin.Context) {
	var input CreateDataInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgNameRequired})
		return
	}

	if _, err := h.dataService.CreateData(input.Name); err != nil {
		if errors.Is(err, service.ErrDataExists) {
			c.JSON(http.StatusConflict, gin.H{"message": msgExists})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgInserted})
}

// ListData 處理 GET /data
func (h *DataHandler) ListData(c *gin.Context) {
	records, err := h.dataService.ListData()
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// DeleteData 處理 DELETE /data/:id，無法解析的 id 視為不存在
func (h *DataHandler) DeleteData(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
		return
	}

	if err := h.dataService.DeleteData(uint(id)); err != nil {
		if errors.Is(err, service.ErrDataNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
			return
		}
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgDeleted})
}

func (h *DataHandler) internalError(c *gin.Context, err error) {
	h.logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternalError})
}
