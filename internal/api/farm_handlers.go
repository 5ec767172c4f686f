// farm_handlers.go - Task planner, inventory and pest tracking endpoints.

package api

import (
	"net/http"

	"github.com/agrisense/farm_assist_gemini/internal/storage"
	"github.com/gin-gonic/gin"
)

// --- Tasks ---

type taskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

// CreateTaskHandler handles POST /api/v1/tasks.
func CreateTaskHandler(c *gin.Context) {
	var req taskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required", "details": err.Error()})
		return
	}

	task := &storage.Task{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	}
	if err := storage.CreateTask(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// ListTasksHandler handles GET /api/v1/tasks.
func ListTasksHandler(c *gin.Context) {
	tasks, err := storage.ListTasks(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// UpdateTaskHandler handles PUT /api/v1/tasks/:id.
func UpdateTaskHandler(c *gin.Context) {
	var req taskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task update", "details": err.Error()})
		return
	}

	if req.Status != "" && req.Status != storage.TaskPending &&
		req.Status != storage.TaskInProgress && req.Status != storage.TaskDone {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid status",
			"allowed": []string{storage.TaskPending, storage.TaskInProgress, storage.TaskDone},
		})
		return
	}

	task := &storage.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	}
	if err := storage.UpdateTask(currentUserID(c), c.Param("id"), task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteTaskHandler handles DELETE /api/v1/tasks/:id.
func DeleteTaskHandler(c *gin.Context) {
	if err := storage.DeleteTask(currentUserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// --- Inventory ---

type inventoryRequest struct {
	Kind     string  `json:"kind" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes"`
}

// CreateInventoryHandler handles POST /api/v1/inventory.
func CreateInventoryHandler(c *gin.Context) {
	var req inventoryRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind and name are required", "details": err.Error()})
		return
	}

	item := &storage.InventoryItem{
		UserID:   currentUserID(c),
		Kind:     req.Kind,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
	}
	if err := storage.CreateInventoryItem(item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// ListInventoryHandler handles GET /api/v1/inventory?kind=input|output.
func ListInventoryHandler(c *gin.Context) {
	kind := c.DefaultQuery("kind", storage.InventoryInput)
	if kind != storage.InventoryInput && kind != storage.InventoryOutput {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid kind",
			"allowed": []string{storage.InventoryInput, storage.InventoryOutput},
		})
		return
	}

	items, err := storage.ListInventory(currentUserID(c), kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// DeleteInventoryHandler handles DELETE /api/v1/inventory/:id.
func DeleteInventoryHandler(c *gin.Context) {
	if err := storage.DeleteInventoryItem(currentUserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// --- Pest tracking ---

type pestRequest struct {
	Name           string `json:"name" binding:"required"`
	Date           string `json:"date"`
	Location       string `json:"location"`
	AffectedPlants string `json:"affectedPlants"`
	TreatmentPlan  string `json:"treatmentPlan"`
	Notes          string `json:"notes"`
}

// CreatePestRecordHandler handles POST /api/v1/pests.
func CreatePestRecordHandler(c *gin.Context) {
	var req pestRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required", "details": err.Error()})
		return
	}

	record := &storage.PestRecord{
		UserID:         currentUserID(c),
		Name:           req.Name,
		Date:           req.Date,
		Location:       req.Location,
		AffectedPlants: req.AffectedPlants,
		TreatmentPlan:  req.TreatmentPlan,
		Notes:          req.Notes,
	}
	if err := storage.CreatePestRecord(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"record": record})
}

// ListPestRecordsHandler handles GET /api/v1/pests?q=&location=&date=.
func ListPestRecordsHandler(c *gin.Context) {
	filter := storage.PestFilter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		Date:     c.Query("date"),
	}

	records, err := storage.ListPestRecords(currentUserID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
