package files

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"staffms/internal/app/http/middleware"
	"staffms/internal/domain/access"
	"staffms/internal/domain/media"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errStorageFull = errors.New("storage limit reached")

type Handler struct {
	DB      *gorm.DB
	Advisor *access.Advisor
	Root    string
	Log     *slog.Logger
}

func NewHandler(db *gorm.DB, advisor *access.Advisor, root string, log *slog.Logger) *Handler {
	return &Handler{DB: db, Advisor: advisor, Root: root, Log: log}
}

func (h *Handler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.Organization == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}

	var out []media.File
	if err := h.DB.Where("organization_id = ?", user.Organization.ID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load files"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Upload stores a multipart "file" and charges its size to the organization's
// storage, refusing uploads that would exceed the plan limit.
func (h *Handler) Upload(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.Organization == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	org := user.Organization

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}
	if header.Size <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty file"})
		return
	}
	if !h.Advisor.HasStorageSpace(org, header.Size) {
		h.storageFull(c, org)
		return
	}

	f := media.File{
		ID:             uuid.NewString(),
		OrganizationID: org.ID,
		UploadedBy:     user.ID,
		Name:           filepath.Base(header.Filename),
		ContentType:    header.Header.Get("Content-Type"),
		Size:           header.Size,
	}
	f.Path = media.StoragePath(h.Root, org.ID, f.ID, header.Filename)

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		h.Log.Error("create upload dir failed", "path", f.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}
	if err := c.SaveUploadedFile(header, f.Path); err != nil {
		h.Log.Error("save upload failed", "path", f.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	err = h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var locked organizations.Organization
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, org.ID).Error; err != nil {
			return err
		}
		if !h.Advisor.HasStorageSpace(&locked, f.Size) {
			return errStorageFull
		}
		if err := tx.Create(&f).Error; err != nil {
			return err
		}
		return tx.Model(&organizations.Organization{}).
			Where("id = ?", org.ID).
			Update("storage_used", gorm.Expr("storage_used + ?", f.Size)).Error
	})
	if err != nil {
		_ = os.Remove(f.Path)
		if errors.Is(err, errStorageFull) {
			h.storageFull(c, org)
			return
		}
		h.Log.Error("record upload failed", "organization_id", org.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	h.Log.Info("file uploaded", "organization_id", org.ID, "file_id", f.ID, "size", f.Size)
	c.JSON(http.StatusCreated, f)
}

// Delete removes a file and releases its storage.
func (h *Handler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.Organization == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}

	var f media.File
	if err := h.DB.Where("id = ? AND organization_id = ?", c.Param("id"), user.Organization.ID).
		First(&f).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	if f.UploadedBy != user.ID && !user.CanManageOrganization() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this file"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&f).Error; err != nil {
			return err
		}
		return tx.Model(&organizations.Organization{}).
			Where("id = ?", f.OrganizationID).
			Update("storage_used", gorm.Expr("GREATEST(storage_used - ?, 0)", f.Size)).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		h.Log.Warn("remove stored file failed", "path", f.Path, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}

func (h *Handler) storageFull(c *gin.Context, org *organizations.Organization) {
	resp := gin.H{
		"status":           false,
		"message":          "You have run out of storage on your plan. Please upgrade for more space.",
		"upgrade_required": true,
		"storage_used":     plans.FormatStorage(org.StorageUsed),
	}
	if next, ok := h.Advisor.RecommendedUpgrade(org); ok {
		resp["recommended_upgrade"] = next
	}
	c.JSON(http.StatusForbidden, resp)
}
